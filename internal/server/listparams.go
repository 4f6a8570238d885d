package server

import (
	"net/http"
	"strconv"

	"itemshare-api/internal/apperr"
	"itemshare-api/internal/model"
	"itemshare-api/internal/service"
)

// queryInt reads an integer query parameter, falling back to def when
// the parameter is absent. Range checks live in the services.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.InvalidInputf("invalid %s parameter %q", name, raw)
	}
	return n, nil
}

// pageParams reads the from/size pair shared by the list endpoints.
func pageParams(r *http.Request) (from, size int, err error) {
	from, err = queryInt(r, "from", 0)
	if err != nil {
		return 0, 0, err
	}
	size, err = queryInt(r, "size", service.DefaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	return from, size, nil
}

// stateParam reads the booking state filter, defaulting to ALL.
func stateParam(r *http.Request) string {
	if raw := r.URL.Query().Get("state"); raw != "" {
		return raw
	}
	return string(model.StateAll)
}
