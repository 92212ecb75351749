// Package controllers exposes the restaurant services over HTTP.
package controllers

import (
	"fmt"
	"time"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by request models:
// calendar_date (YYYY-MM-DD), clock_time (HH:MM) and order_status.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("calendar_date", layoutValidator(models.DateLayout)); err != nil {
		return err
	}
	if err := v.RegisterValidation("clock_time", layoutValidator(models.ClockLayout)); err != nil {
		return err
	}
	return v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return models.OrderStatus(fl.Field().String()).IsValid()
	})
}

func layoutValidator(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := time.Parse(layout, fl.Field().String())
		return err == nil
	}
}
