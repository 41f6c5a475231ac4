package catalog

import (
	"fmt"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const segmentsKey = "segments"

// SegmentLoader keeps a SegmentTable in sync with a YAML merchandising file:
//
//	segments:
//	  finance: ["2007", "2009"]
type SegmentLoader struct {
	v     *viper.Viper
	table *SegmentTable
	log   logger.Logger
}

// LoadSegments reads path into table. The table keeps its current content if
// the file defines no segments.
func LoadSegments(path string, table *SegmentTable, log logger.Logger) (*SegmentLoader, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read segments file %s: %w", path, err)
	}
	l := &SegmentLoader{v: v, table: table, log: log}
	l.apply()
	return l, nil
}

func (l *SegmentLoader) apply() {
	segments := l.v.GetStringMapStringSlice(segmentsKey)
	if len(segments) == 0 {
		l.log.Warnf("Segments file %s defines no segments, keeping current table", l.v.ConfigFileUsed())
		return
	}
	l.table.Replace(segments)
	l.log.Infof("Loaded %d catalog segments from %s", len(segments), l.v.ConfigFileUsed())
}

// Watch reloads the table whenever the file changes.
func (l *SegmentLoader) Watch() {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		l.log.Infof("Segments file changed: %s", e.Name)
		l.apply()
	})
	l.v.WatchConfig()
}
