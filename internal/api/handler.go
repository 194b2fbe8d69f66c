package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"room-booking-console/internal/apiclient"
	"room-booking-console/internal/confirm"
	"room-booking-console/internal/console"
	"room-booking-console/internal/service"
	"room-booking-console/internal/store"
)

// Deps are the collaborators of the HTTP handlers. Store and Notifier may be nil.
type Deps struct {
	Backend  service.Requester
	Store    store.Store
	Webpush  *webpush.Options
	Confirms *confirm.Store
	Notifier console.BookingNotifier
	Location *time.Location
	// DefaultTenant is where "/" redirects to.
	DefaultTenant string
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	backend  service.Requester
	store    store.Store
	webpush  *webpush.Options
	confirms *confirm.Store
	notifier console.BookingNotifier
	loc      *time.Location
	tenant   string
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	confirms := d.Confirms
	if confirms == nil {
		confirms = confirm.NewStore(2 * time.Minute)
	}
	return &Handler{
		backend:  d.Backend,
		store:    d.Store,
		webpush:  d.Webpush,
		confirms: confirms,
		notifier: d.Notifier,
		loc:      d.Location,
		tenant:   d.DefaultTenant,
	}
}

// console builds the screens of the tenant named in the route.
func (h *Handler) console(c *gin.Context) *console.Console {
	opts := console.Options{Notifier: h.notifier, Location: h.loc}
	if h.store != nil {
		opts.Audit = h.store
	}
	return console.New(c.Param("tenant"), h.backend, opts)
}

// errorBody is the JSON shape of every failed console call.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	State any    `json:"state,omitempty"`
}

// statusFor maps the console error taxonomy to HTTP statuses.
func statusFor(err error) (int, string) {
	var berr *console.BusinessError
	var aerr *apiclient.Error
	switch {
	case errors.Is(err, console.ErrIncompleteForm), errors.Is(err, console.ErrNoSelection):
		return http.StatusBadRequest, ""
	case errors.As(err, &berr):
		return http.StatusUnprocessableEntity, ""
	case errors.Is(err, service.ErrNotFound), errors.Is(err, confirm.ErrUnknownToken):
		return http.StatusNotFound, ""
	case errors.As(err, &aerr):
		switch aerr.Kind {
		case apiclient.KindResponse:
			return http.StatusBadGateway, string(aerr.Kind)
		case apiclient.KindNoResponse:
			return http.StatusGatewayTimeout, string(aerr.Kind)
		default:
			return http.StatusInternalServerError, string(aerr.Kind)
		}
	default:
		return http.StatusInternalServerError, ""
	}
}

// fail writes err together with the screen state it left behind.
func fail(c *gin.Context, err error, state any) {
	status, kind := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("console call failed")
	}
	c.Error(err)
	c.JSON(status, errorBody{Error: err.Error(), Kind: kind, State: state})
}

// listFailed answers a list whose load failed. The message is already in the state.
func listFailed(c *gin.Context, msg string, state any) {
	c.JSON(http.StatusBadGateway, errorBody{Error: msg, State: state})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// modeQuery reads ?mode=edit, defaulting to view.
func modeQuery(c *gin.Context) console.Mode {
	if c.Query("mode") == string(console.ModeEdit) {
		return console.ModeEdit
	}
	return console.ModeView
}

// park answers a delete request with a confirmation token instead of deleting.
func (h *Handler) park(c *gin.Context, resource string, id, roomID int64) {
	p := h.confirms.Park(confirm.Pending{
		Tenant:   c.Param("tenant"),
		Resource: resource,
		ID:       id,
		RoomID:   roomID,
		Prompt:   console.Prompt(resource),
	})
	c.JSON(http.StatusAccepted, p)
}

// Home sends the browser to the room screen of the default tenant.
func (h *Handler) Home(c *gin.Context) {
	if h.tenant == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no default tenant configured"})
		return
	}
	c.Redirect(http.StatusFound, "/console/"+url.PathEscape(h.tenant)+"/rooms")
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
