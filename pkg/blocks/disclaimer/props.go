package disclaimer

// Props are the editable attributes of the block. They are read once per
// render and never mutated.
type Props struct {
	PaidForBy       string `json:"paidForBy" yaml:"paidForBy"`
	PacID           string `json:"pacId" yaml:"pacId"`
	TextColor       string `json:"textColor" yaml:"textColor"`
	BackgroundColor string `json:"backgroundColor" yaml:"backgroundColor"`
	Note            string `json:"note,omitempty" yaml:"note,omitempty"`
}

// WithDefaults fills empty attributes from d.
func (p Props) WithDefaults(d Props) Props {
	if p.PaidForBy == "" {
		p.PaidForBy = d.PaidForBy
	}
	if p.PacID == "" {
		p.PacID = d.PacID
	}
	if p.TextColor == "" {
		p.TextColor = d.TextColor
	}
	if p.BackgroundColor == "" {
		p.BackgroundColor = d.BackgroundColor
	}
	if p.Note == "" {
		p.Note = d.Note
	}
	return p
}
