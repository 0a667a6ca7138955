package api

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

var (
	codec    = jsoniter.ConfigCompatibleWithStandardLibrary
	validate = validator.New()
)

// TransportError is returned by read methods when the node could not be
// reached or answered with a non-2xx status and an unreadable body.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed with status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a body that is not JSON or violates the record schema.
// Read methods turn it into an absent result.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("failed to decode response: %v", e.Err)
	}
	return fmt.Sprintf("failed to decode %q: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err is or wraps a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// DecodeEnvelope decodes a node response whose payload lives under field.
// An empty field means the payload is the top-level object itself.
//
// A success=false envelope, a null or missing payload and an empty array all
// decode to a nil Payload without error.
func DecodeEnvelope[T any](body []byte, field string) (*Envelope[T], error) {
	if !gjson.ValidBytes(body) {
		return nil, &DecodeError{Field: field, Err: errors.New("body is not valid JSON")}
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, &DecodeError{Field: field, Err: errors.New("body is not a JSON object")}
	}

	success := root.Get("success")
	if success.Type != gjson.True && success.Type != gjson.False {
		return nil, &DecodeError{Field: "success", Err: errors.New("missing success flag")}
	}

	env := &Envelope[T]{Success: success.Bool()}
	if !env.Success {
		return env, nil
	}

	raw := root
	if field != "" {
		raw = root.Get(field)
	}
	if !raw.Exists() || raw.Type == gjson.Null {
		return env, nil
	}
	if raw.IsArray() && len(raw.Array()) == 0 {
		return env, nil
	}

	var payload T
	if err := codec.Unmarshal([]byte(raw.Raw), &payload); err != nil {
		return nil, &DecodeError{Field: field, Err: err}
	}
	if err := validatePayload(payload); err != nil {
		return nil, &DecodeError{Field: field, Err: err}
	}

	env.Payload = &payload
	return env, nil
}

// validatePayload runs struct validation on a record or on every element of
// a record slice.
func validatePayload(payload any) error {
	v := reflect.ValueOf(payload)
	switch v.Kind() {
	case reflect.Struct:
		return validate.Struct(payload)
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			if elem.Kind() != reflect.Struct {
				continue
			}
			if err := validate.Struct(elem.Interface()); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	}
	return nil
}

// DecodeTicker decodes the price ticker body, a flat {"USD": 0.5, ...} object.
func DecodeTicker(body []byte) (*Ticker, error) {
	if !gjson.ValidBytes(body) {
		return nil, &DecodeError{Err: errors.New("body is not valid JSON")}
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, &DecodeError{Err: errors.New("body is not a JSON object")}
	}
	if root.Get("Response").String() == "Error" {
		return nil, &DecodeError{Err: fmt.Errorf("ticker error: %s", root.Get("Message").String())}
	}

	rates := make(map[string]decimal.Decimal)
	for _, code := range TickerCurrencies {
		value := root.Get(code)
		if !value.Exists() {
			continue
		}
		if value.Type != gjson.Number && value.Type != gjson.String {
			return nil, &DecodeError{Field: code, Err: fmt.Errorf("unexpected %s value", value.Type)}
		}
		rate, err := decimal.NewFromString(value.String())
		if err != nil {
			return nil, &DecodeError{Field: code, Err: err}
		}
		rates[code] = rate
	}

	if len(rates) == 0 {
		return nil, &DecodeError{Err: errors.New("no known currency in ticker")}
	}

	return &Ticker{rates: rates}, nil
}
