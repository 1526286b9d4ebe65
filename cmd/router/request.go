package main

import (
	"errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/roadrouter/pkg/util"
)

// routeRequest is a query assembled from the command line. an endpoint is either a node id or a
// coordinate that gets snapped to the nearest node.
type routeRequest struct {
	Algorithm string   `validate:"required,oneof=dijkstra astar"`
	FromID    *int64   `validate:"required_without_all=FromLat FromLon"`
	ToID      *int64   `validate:"required_without_all=ToLat ToLon"`
	FromLat   *float64 `validate:"required_without=FromID,required_with=FromLon,omitempty,min=-90,max=90"`
	FromLon   *float64 `validate:"required_without=FromID,required_with=FromLat,omitempty,min=-180,max=180"`
	ToLat     *float64 `validate:"required_without=ToID,required_with=ToLon,omitempty,min=-90,max=90"`
	ToLon     *float64 `validate:"required_without=ToID,required_with=ToLat,omitempty,min=-180,max=180"`
	// snapping radius in meters
	Radius     float64 `validate:"gt=0"`
	MaxSettled int     `validate:"gte=0"`
}

type lookupRequest struct {
	Street  string `validate:"required_without=Suggest"`
	Suggest string `validate:"required_without=Street"`
	Limit   int    `validate:"gte=0,lte=1000"`
}

func validateRequest(request any) error {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return util.WrapErrorf(nil, util.ErrBadParamInput, "validation error: %v", vvString)
	}
	return nil
}

func translateError(err error, trans ut.Translator) []error {
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	errs := make([]error, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
