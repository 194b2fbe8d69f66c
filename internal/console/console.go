// Package console holds the screen logic of the admin console. Every
// operation takes the current screen state as a value and returns the next
// one; nothing is kept between calls apart from the service bindings.
package console

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"room-booking-console/internal/apiclient"
	"room-booking-console/internal/model"
	"room-booking-console/internal/service"
)

// Mode is the purpose of the open modal.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
	ModeView   Mode = "view"
)

// Modal describes the modal dialog of a screen.
type Modal struct {
	Open bool `json:"open"`
	Mode Mode `json:"mode,omitempty"`
}

// Level is the severity of a notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Notice is a message the user must see.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func (n Notice) String() string {
	switch n.Level {
	case LevelSuccess:
		return "✅ " + n.Message
	case LevelWarning:
		return "⚠️ " + n.Message
	default:
		return "❌ " + n.Message
	}
}

var (
	// ErrIncompleteForm is returned by Submit when a required field is empty.
	ErrIncompleteForm = errors.New("Vui lòng điền đầy đủ thông tin bắt buộc")
	// ErrCancelled is returned by Delete when the user declines the confirmation.
	ErrCancelled = errors.New("đã hủy thao tác")
	// ErrNoSelection is returned when an edit is submitted without a selected entity.
	ErrNoSelection = errors.New("chưa chọn bản ghi để cập nhật")
)

// BusinessError is a backend refusal delivered with a 2xx status.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string {
	if e.Message == "" {
		return apiclient.MsgFallback
	}
	return e.Message
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Auditor records the outcome of mutating actions.
type Auditor interface {
	RecordAction(ctx context.Context, entry *model.AuditEntry) error
}

// BookingNotifier receives booking changes made through the console.
type BookingNotifier interface {
	Dispatch(event model.BookingEvent)
}

// Options are the optional collaborators of the views.
type Options struct {
	Audit    Auditor
	Notifier BookingNotifier
	Location *time.Location // for datetime-local form values, defaults to time.Local
}

// AssetResource is the asset service contract used by AssetView.
type AssetResource interface {
	service.Resource
	AllocationHistory(ctx context.Context, filters service.Filters) (*apiclient.Envelope, error)
}

// Console groups the three screens of one tenant.
type Console struct {
	Tenant   string
	Rooms    *RoomView
	Bookings *BookingView
	Assets   *AssetView
}

// New builds the screens of tenant on top of client.
func New(tenant string, client service.Requester, opts Options) *Console {
	rooms := service.NewRoomService(client, tenant)
	rec := newRecorder(tenant, opts)
	return &Console{
		Tenant:   tenant,
		Rooms:    newRoomView(rooms, rec),
		Bookings: newBookingView(rooms, service.NewBookingService(client, tenant), rec),
		Assets:   newAssetView(service.NewAssetService(client, tenant), rec),
	}
}

// recorder carries the audit and notification hooks shared by the views.
type recorder struct {
	tenant   string
	audit    Auditor
	notifier BookingNotifier
	loc      *time.Location
}

func newRecorder(tenant string, opts Options) recorder {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return recorder{tenant: tenant, audit: opts.Audit, notifier: opts.Notifier, loc: loc}
}

// Resource names used in audit entries and confirmations.
const (
	ResourceRoom    = "phong_hop"
	ResourceBooking = "dat_phong"
	ResourceAsset   = "tai_san"
)

// Audit actions.
const (
	actionCreate = "create"
	actionUpdate = "update"
	actionDelete = "delete"
)

// outcome turns the result of a mutating call into a notice, an error and an
// audit entry. errPrefix is put in front of transport error messages.
func (r recorder) outcome(ctx context.Context, resource, action string, id int64, env *apiclient.Envelope, err error, errPrefix string) (Notice, error) {
	var (
		notice Notice
		status model.AuditOutcome
		msg    string
	)
	switch {
	case err != nil:
		msg = err.Error()
		notice = Notice{Level: LevelError, Message: errPrefix + msg}
		status = model.OutcomeError
	case !env.OK():
		berr := &BusinessError{Message: env.Message}
		msg = berr.Error()
		notice = Notice{Level: LevelError, Message: msg}
		status = model.OutcomeBusinessFailure
		err = berr
	default:
		msg = env.Message
		notice = Notice{Level: LevelSuccess, Message: msg}
		status = model.OutcomeSuccess
	}

	if r.audit != nil {
		entry := &model.AuditEntry{
			Tenant:   r.tenant,
			Resource: resource,
			Action:   action,
			EntityID: id,
			Outcome:  status,
			Message:  msg,
		}
		if aerr := r.audit.RecordAction(ctx, entry); aerr != nil {
			log.Warn().Err(aerr).Str("resource", resource).Str("action", action).Msg("failed to record audit entry")
		}
	}
	return notice, err
}

func (r recorder) notify(event model.BookingEvent) {
	if r.notifier == nil {
		return
	}
	event.Tenant = r.tenant
	r.notifier.Dispatch(event)
}

// createdID extracts the id of a freshly created entity when the backend returns it.
func createdID(env *apiclient.Envelope) int64 {
	var out struct {
		ID int64 `json:"id"`
	}
	if env == nil || env.DecodeData(&out) != nil {
		return 0
	}
	return out.ID
}

// loadMessage is the message shown when a list or detail read fails.
func loadMessage(env *apiclient.Envelope, err error, fallback string) string {
	if err != nil {
		if msg := err.Error(); msg != "" {
			return msg
		}
		return fallback
	}
	if env.Message != "" {
		return env.Message
	}
	return fallback
}

// Delete prompts.
const (
	promptDeleteRoom    = "Bạn có chắc chắn muốn xóa phòng họp này?"
	promptDeleteBooking = "Bạn có chắc chắn muốn xóa đặt phòng này?"
	promptDeleteAsset   = "Bạn có chắc chắn muốn xóa tài sản này?"
)

// Prompt returns the confirmation question for deleting an entity of resource.
func Prompt(resource string) string {
	switch resource {
	case ResourceRoom:
		return promptDeleteRoom
	case ResourceBooking:
		return promptDeleteBooking
	default:
		return promptDeleteAsset
	}
}
