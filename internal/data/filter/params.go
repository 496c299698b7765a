package filter

import (
	"net/url"

	"github.com/gorilla/schema"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.ZeroEmpty(true)
	return d
}

// DecodeTourParams reads tour filters from a query string. Decoding never fails the request;
// unreadable fields stay empty and so add no constraint.
func DecodeTourParams(values url.Values) TourParams {
	var p TourParams
	_ = decoder.Decode(&p, values)
	return p
}

func DecodeMotorcycleParams(values url.Values) MotorcycleParams {
	var p MotorcycleParams
	_ = decoder.Decode(&p, values)
	return p
}
