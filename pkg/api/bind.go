package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"

	govalidator "github.com/go-playground/validator/v10"
)

// BindJSON decodes a JSON body into v. Unknown top-level fields and
// trailing data are rejected.
func BindJSON(maxBytes int64) Bind {
	return func(r *http.Request, v any) error {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			return errors.Join(ErrUnsupportedMediaType, fmt.Errorf("expected application/json, got %q", r.Header.Get("Content-Type")))
		}

		body := r.Body
		if maxBytes > 0 {
			body = http.MaxBytesReader(nil, r.Body, maxBytes)
		}
		dec := json.NewDecoder(body)
		dec.DisallowUnknownFields()

		if err := dec.Decode(v); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return err
			}
			if errors.Is(err, io.EOF) {
				return errors.Join(ErrBadRequest, ErrInvalidJSON, errors.New("empty body"))
			}
			return errors.Join(ErrBadRequest, ErrInvalidJSON, err)
		}

		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return errors.Join(ErrBadRequest, ErrInvalidJSON, errors.New("unexpected data after JSON object"))
		}
		return nil
	}
}

// BindPath copies path parameters into string fields tagged `path:"name"`.
func BindPath(param func(r *http.Request, name string) string) Bind {
	return func(r *http.Request, v any) error {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("bind path: target must be a pointer to struct, got %T", v)
		}
		rv = rv.Elem()
		rt := rv.Type()
		for i := range rv.NumField() {
			name := rt.Field(i).Tag.Get("path")
			if name == "" || name == "-" {
				continue
			}
			f := rv.Field(i)
			if !f.CanSet() || f.Kind() != reflect.String {
				continue
			}
			f.SetString(param(r, name))
		}
		return nil
	}
}

var requestValidator = func() *govalidator.Validate {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "path"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}()

// Validate checks v against its `validate` tags and reports failures as a
// RequestError keyed by JSON field path.
func Validate() Bind {
	return func(_ *http.Request, v any) error {
		err := requestValidator.Struct(v)
		if err == nil {
			return nil
		}
		var verrs govalidator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		out := make(RequestError, len(verrs))
		for _, fe := range verrs {
			field := fe.Namespace()
			if _, rest, ok := strings.Cut(field, "."); ok {
				field = rest
			}
			out[field] = append(out[field], fe.Tag())
		}
		return out
	}
}
