package controllers

import (
	"github.com/go-playground/validator"
)

var validate = validator.New()
