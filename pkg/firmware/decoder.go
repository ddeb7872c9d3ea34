package firmware

// Step is the controller's reaction to one received pulse.
type Step struct {
	WidthUS int    `json:"widthUs"`
	State   string `json:"state"`
	Channel string `json:"channel,omitempty"`
	// Code is the compare value after the pulse.
	Code int `json:"code"`
}

// Decoder follows the controller's main loop: it starts at the default
// output and keeps the last code whenever a pulse matches no window.
type Decoder struct {
	s    Settings
	code int
}

// NewDecoder validates s and returns a decoder at the default output.
func NewDecoder(s Settings) (*Decoder, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Decoder{s: s, code: s.Code(s.DefaultMV)}, nil
}

// Code returns the current compare value.
func (d *Decoder) Code() int {
	return d.code
}

// Feed processes one pulse.
func (d *Decoder) Feed(widthUS int) Step {
	c, ok := d.s.Classify(widthUS)
	if ok {
		d.code = d.s.Code(c.MilliVolts)
	}
	return Step{
		WidthUS: widthUS,
		State:   c.State,
		Channel: c.Name,
		Code:    d.code,
	}
}
