package entity

// ProgressStep is one row of the order tracking checklist.
type ProgressStep struct {
	Status OrderStatus `json:"status"`
	Label  string      `json:"label"`
	Done   bool        `json:"done"`
}

type OrderProgress struct {
	Status      OrderStatus    `json:"status"`
	CurrentStep int            `json:"currentStep"`
	Steps       []ProgressStep `json:"steps,omitempty"`
	Cancelled   bool           `json:"cancelled"`
}

var progressPath = []ProgressStep{
	{Status: StatusPending, Label: "Pending"},
	{Status: StatusProcessing, Label: "Processing"},
	{Status: StatusShipped, Label: "Available for download"},
	{Status: StatusDelivered, Label: "Completed"},
}

// ProgressFor projects a status onto the linear checklist. It performs no
// transition checks. Cancelled and unrecognised statuses have no current step;
// only cancelled hides the checklist.
func ProgressFor(status OrderStatus) OrderProgress {
	if status == StatusCancelled {
		return OrderProgress{Status: status, CurrentStep: -1, Cancelled: true}
	}

	current := -1
	for i, step := range progressPath {
		if step.Status == status {
			current = i
			break
		}
	}

	steps := make([]ProgressStep, len(progressPath))
	for i, step := range progressPath {
		step.Done = current >= 0 && i <= current
		steps[i] = step
	}
	return OrderProgress{Status: status, CurrentStep: current, Steps: steps}
}
