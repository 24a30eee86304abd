package validator

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/petcareapp/portal-api/internal/model"
)

// RegisterCustomRules installs the portal's binding rules on gin's
// validator engine. Must run once before the router starts serving.
func RegisterCustomRules() error {
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	if err := engine.RegisterValidation("cpf", validCPF); err != nil {
		return fmt.Errorf("failed to register cpf rule: %w", err)
	}
	return nil
}

// validCPF accepts both bare and formatted CPF strings; the checksum does
// the real work.
func validCPF(fl validator.FieldLevel) bool {
	_, err := model.NewCPF(fl.Field().String())
	return err == nil
}
