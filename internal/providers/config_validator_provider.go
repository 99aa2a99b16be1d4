package providers

import (
	"fmt"
	"github.com/gookit/validate"
	"livevote/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	v.StopOnError = false
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %s", v.Errors.String())
	}
	if cv.conf.Cache.Enabled && cv.conf.Cache.Size <= 0 {
		return fmt.Errorf("invalid configuration: cache.size must be positive when cache is enabled")
	}
	return nil
}
