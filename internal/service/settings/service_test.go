package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/repository/memory"
	"github.com/jwalitptl/clinic-dashboard/internal/service/audit"
	apperrors "github.com/jwalitptl/clinic-dashboard/pkg/errors"
	"github.com/jwalitptl/clinic-dashboard/pkg/validator"
)

func newTestService() *Service {
	auditor := audit.NewService(memory.New[model.AuditLog]())
	return NewService(model.EmailSettings{SMTPPort: "587"}, validator.New(), auditor)
}

func TestUpdateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	got, err := svc.UpdateEmail(ctx, model.EmailSettings{
		Email:      "clinic@example.com",
		Password:   "s3cret!",
		SMTPServer: "smtp.example.com",
		SMTPPort:   "465",
	})
	require.NoError(t, err)
	assert.Equal(t, "******", got.Password)

	current := svc.Email(ctx)
	assert.Equal(t, "clinic@example.com", current.Email)
	assert.Equal(t, "465", current.SMTPPort)
	assert.Equal(t, "******", current.Password)
}

func TestUpdateEmail_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.UpdateEmail(ctx, model.EmailSettings{
		Email:      "clinic",
		Password:   "123",
		SMTPServer: "",
		SMTPPort:   "smtp",
	})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)

	messages := map[string]string{}
	for _, f := range appErr.Fields {
		messages[f.Field] = f.Message
	}
	assert.Equal(t, map[string]string{
		"email":       "Invalid email format",
		"password":    "Must be at least 6 characters",
		"smtp_server": "Field is required",
		"smtp_port":   "Must be a valid number",
	}, messages)

	assert.Equal(t, "587", svc.Email(ctx).SMTPPort)
	assert.Empty(t, svc.Email(ctx).Password)
}
