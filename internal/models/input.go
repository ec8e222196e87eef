package models

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultRate is applied at the validation boundary when a creation payload
// omits the rate. The store itself treats all supplied attributes literally.
const DefaultRate = 5.0

// CreateMovieInput is the fully-shaped creation payload. The genre vocabulary
// is enforced here, not in the resolver — the resolver tolerates any text.
type CreateMovieInput struct {
	Title    string   `json:"title" binding:"required"`
	Year     int      `json:"year" binding:"required,gte=1900,lte=2025"`
	Director string   `json:"director" binding:"required"`
	Duration int      `json:"duration" binding:"required,gt=0"`
	Poster   string   `json:"poster" binding:"required,url"`
	Genre    []string `json:"genre" binding:"required,dive,oneof=Action Adventure Crime Comedy Drama Fantasy Horror Thriller Sci-Fi"`
	Rate     *float64 `json:"rate" binding:"omitempty,gte=0,lte=10"`
}

// RateOrDefault returns the supplied rate, or DefaultRate when absent.
func (in CreateMovieInput) RateOrDefault() float64 {
	if in.Rate == nil {
		return DefaultRate
	}
	return *in.Rate
}

// ValidatePartialUpdate checks and coerces a PATCH body. Recognized scalar
// fields are type- and range-checked and converted from their JSON decoding
// (numbers arrive as float64) into the column's native type. Genre membership
// is rejected outright: partial updates touch scalar attributes only.
// Unrecognized keys pass through untouched; the store drops them.
func ValidatePartialUpdate(input map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(input))
	for key, value := range input {
		var (
			v   any
			err error
		)
		switch strings.ToLower(key) {
		case "title":
			v, err = requireString(key, value, true)
		case "director":
			v, err = requireString(key, value, false)
		case "poster":
			v, err = requireURL(key, value)
		case "year":
			v, err = requireInt(key, value, 1900, 2025)
		case "duration":
			v, err = requirePositiveInt(key, value)
		case "rate":
			v, err = requireFloat(key, value, 0, 10)
		case "genre", "genres":
			return nil, fmt.Errorf("field %q cannot be changed through a partial update", key)
		default:
			v = value
		}
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

func requireString(key string, value any, nonEmpty bool) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", key)
	}
	if nonEmpty && strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("field %q must not be empty", key)
	}
	return s, nil
}

func requireURL(key string, value any) (string, error) {
	s, err := requireString(key, value, true)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("field %q must be a valid URL", key)
	}
	return s, nil
}

func requireInt(key string, value any, min, max int) (int, error) {
	f, ok := value.(float64)
	if !ok || f != float64(int(f)) {
		return 0, fmt.Errorf("field %q must be an integer", key)
	}
	n := int(f)
	if n < min || n > max {
		return 0, fmt.Errorf("field %q must be between %d and %d", key, min, max)
	}
	return n, nil
}

func requirePositiveInt(key string, value any) (int, error) {
	f, ok := value.(float64)
	if !ok || f != float64(int(f)) {
		return 0, fmt.Errorf("field %q must be an integer", key)
	}
	if f < 1 {
		return 0, fmt.Errorf("field %q must be positive", key)
	}
	return int(f), nil
}

func requireFloat(key string, value any, min, max float64) (float64, error) {
	f, ok := value.(float64)
	if !ok {
		return 0, fmt.Errorf("field %q must be a number", key)
	}
	if f < min || f > max {
		return 0, fmt.Errorf("field %q must be between %v and %v", key, min, max)
	}
	return f, nil
}
