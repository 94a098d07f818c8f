// Package handlers adapts gin requests into facade calls and facade
// results into the common.APIResponse envelope. One file per
// resource; this file holds the binding/pagination helpers every
// handler shares.
package handlers

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/prashant0321/wallet-service/internal/adapters/http/common"
)

var setupOnce sync.Once

// SetupValidator registers the gin binding engine's tag-name function
// so validation errors report the wire (json) field name rather than
// the Go struct field name, plus the money_amount tag used on every
// request DTO's Amount field.
func SetupValidator() {
	setupOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})
			_ = v.RegisterValidation("money_amount", validateMoneyAmount)
		}
	})
}

// moneyPattern matches an unsigned decimal string with up to 4 places
// past the point, matching valueobjects.Amount's fixed scale.
var moneyPattern = regexp.MustCompile(`^\d+(\.\d{1,4})?$`)

func validateMoneyAmount(fl validator.FieldLevel) bool {
	return moneyPattern.MatchString(fl.Field().String())
}

// BindJSON binds a JSON body and sends a 422 if binding fails.
// Returns false when it already wrote a response.
func BindJSON[T any](c *gin.Context, req *T) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		common.ValidationError(c, err.Error())
		return false
	}
	return true
}

// BindURI binds path parameters and sends a 422 if binding fails.
func BindURI[T any](c *gin.Context, req *T) bool {
	if err := c.ShouldBindUri(req); err != nil {
		common.ValidationError(c, err.Error())
		return false
	}
	return true
}

// Pagination is limit/offset parsed from query params and checked against
// spec §6/§8's bounds: limit ∈ [1,100], offset ≥ 0.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads limit/offset query params, defaulting limit
// to 20 and offset to 0. Out-of-range values are reported by ok=false
// so the handler can send a 422 rather than silently clamping — the
// boundary validation spec §7 names for pagination.
func ParsePagination(c *gin.Context) (Pagination, bool) {
	p := Pagination{Limit: 20, Offset: 0}

	if raw := c.Query("limit"); raw != "" {
		n, err := parsePositiveInt(raw)
		if err != nil || n < 1 || n > 100 {
			return p, false
		}
		p.Limit = n
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := parsePositiveInt(raw)
		if err != nil || n < 0 {
			return p, false
		}
		p.Offset = n
	}
	return p, true
}

func parsePositiveInt(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, &parseError{s}
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

type parseError struct{ value string }

func (e *parseError) Error() string { return "not a valid integer: " + e.value }
