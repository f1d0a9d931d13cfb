package model

type EmailSettings struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password,omitempty" validate:"required,min=6"`
	SMTPServer string `json:"smtp_server" validate:"required"`
	SMTPPort   string `json:"smtp_port" validate:"required,numeric"`
}

// Masked hides the password for display.
func (s EmailSettings) Masked() EmailSettings {
	if s.Password != "" {
		s.Password = "******"
	}
	return s
}
