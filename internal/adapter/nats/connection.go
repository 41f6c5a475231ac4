package nats

import (
	"fmt"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/nats-io/nats.go"
)

// NewConnection dials the event bus used for order and product events.
// Reconnect behaviour comes from config; state changes are only logged.
func NewConnection(cfg config.NATSConfig, log logger.Logger) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(cfg.ClientName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warnw("event bus disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Infow("event bus reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			log.Info("event bus connection closed")
		}),
	}
	if cfg.ConnectWait > 0 {
		opts = append(opts, nats.Timeout(cfg.ConnectWait))
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("event bus %s unreachable: %w", cfg.URL, err)
	}
	log.Infow("event bus connected", "url", nc.ConnectedUrl(), "client", cfg.ClientName)
	return nc, nil
}
