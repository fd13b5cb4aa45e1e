package http

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/nurpe/fieldops-docs/internal/format"
	"github.com/nurpe/fieldops-docs/internal/timecalc"
)

var registerOnce sync.Once

// RegisterValidators adds the "clock" (HH:MM), "hm" (H:MM) and "amount"
// (finite number, comma decimals allowed) rules to gin's binding engine.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			return timecalc.IsClock(fl.Field().String())
		})
		_ = v.RegisterValidation("hm", func(fl validator.FieldLevel) bool {
			_, err := timecalc.ParseDuration(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
			_, err := format.ParseAmount(fl.Field().String())
			return err == nil
		})
	})
}
