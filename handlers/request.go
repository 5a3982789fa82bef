package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/upb/esg-data-management/repositories"
)

const (
	maxBodyBytes = 1 << 20
	maxPageLimit = 1000
)

// decodeBody decodes a JSON request body into dst
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(body).Decode(dst)
}

// parseID reads the {id} path parameter as a positive integer
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// queryParser reads optional list filters and records one message per
// malformed parameter
type queryParser struct {
	values url.Values
	errs   map[string]interface{}
}

func newQueryParser(r *http.Request) *queryParser {
	return &queryParser{values: r.URL.Query(), errs: make(map[string]interface{})}
}

func (p *queryParser) raw(name string) (string, bool) {
	v := strings.TrimSpace(p.values.Get(name))
	return v, v != ""
}

func (p *queryParser) int64Ptr(name string) *int64 {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		p.errs[name] = "Enter a valid positive integer."
		return nil
	}
	return &n
}

func (p *queryParser) intPtr(name string) *int {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs[name] = "Enter a whole number."
		return nil
	}
	return &n
}

func (p *queryParser) boolPtr(name string) *bool {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs[name] = "Enter true or false."
		return nil
	}
	return &b
}

// choice returns the upper-cased parameter when valid accepts it
func (p *queryParser) choice(name string, valid func(string) bool) (string, bool) {
	v, ok := p.raw(name)
	if !ok {
		return "", false
	}
	v = strings.ToUpper(v)
	if !valid(v) {
		p.errs[name] = fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", v)
		return "", false
	}
	return v, true
}

func (p *queryParser) search() string {
	v, _ := p.raw("search")
	return v
}

func (p *queryParser) page() repositories.Page {
	var page repositories.Page
	if v, ok := p.raw("limit"); ok {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil || n < 0:
			p.errs["limit"] = "Enter a non-negative whole number."
		case n > maxPageLimit:
			page.Limit = maxPageLimit
		default:
			page.Limit = n
		}
	}
	if v, ok := p.raw("offset"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			p.errs["offset"] = "Enter a non-negative whole number."
		} else {
			page.Offset = n
		}
	}
	return page
}

// err returns the collected problems, or nil when every parameter parsed
func (p *queryParser) err() map[string]interface{} {
	if len(p.errs) == 0 {
		return nil
	}
	return p.errs
}
