package console

import (
	"context"

	"github.com/rs/zerolog/log"

	"room-booking-console/internal/apiclient"
	"room-booking-console/internal/model"
	"room-booking-console/internal/service"
)

const (
	msgAssetListFailed   = "Không thể tải danh sách tài sản"
	msgHistoryLoadFailed = "Không thể tải lịch sử cấp phát"
)

// AssetState is the asset management screen.
type AssetState struct {
	Filters      service.Filters          `json:"filters"`
	Assets       []model.Asset            `json:"assets"`
	Selected     *model.Asset             `json:"selected,omitempty"`
	Modal        Modal                    `json:"modal"`
	Form         AssetForm                `json:"form"`
	History      []model.AllocationRecord `json:"history,omitempty"`
	HistoryAsset *model.Asset             `json:"history_asset,omitempty"`
	HistoryOpen  bool                     `json:"history_open"`
	Error        string                   `json:"error,omitempty"`
	Notices      []Notice                 `json:"notices,omitempty"`
}

// AssetView drives the asset management screen.
type AssetView struct {
	assets AssetResource
	rec    recorder
}

func newAssetView(assets AssetResource, rec recorder) *AssetView {
	return &AssetView{assets: assets, rec: rec}
}

// Load fetches the asset list for the current filters.
func (v *AssetView) Load(ctx context.Context, st AssetState) AssetState {
	env, err := v.assets.List(ctx, st.Filters)
	if err != nil || !env.OK() {
		st.Error = loadMessage(env, err, msgAssetListFailed)
		return st
	}
	var assets []model.Asset
	if err := env.DecodeData(&assets); err != nil {
		log.Warn().Err(err).Str("tenant", v.rec.tenant).Msg("undecodable asset list")
		st.Error = msgAssetListFailed
		return st
	}
	if assets == nil {
		assets = []model.Asset{}
	}
	st.Assets = assets
	st.Error = ""
	return st
}

// SetFilters replaces the filters and reloads.
func (v *AssetView) SetFilters(ctx context.Context, st AssetState, filters service.Filters) AssetState {
	st.Filters = filters
	return v.Load(ctx, st)
}

// ResetFilters clears every filter and reloads.
func (v *AssetView) ResetFilters(ctx context.Context, st AssetState) AssetState {
	return v.SetFilters(ctx, st, service.Filters{})
}

func (v *AssetView) OpenCreate(st AssetState) AssetState {
	st.Notices = nil
	st.Selected = nil
	st.Form = AssetForm{}
	st.Modal = Modal{Open: true, Mode: ModeCreate}
	return st
}

func (v *AssetView) OpenEdit(st AssetState, a model.Asset) AssetState {
	st.Notices = nil
	st.Selected = &a
	st.Form = AssetFormFrom(a)
	st.Modal = Modal{Open: true, Mode: ModeEdit}
	return st
}

func (v *AssetView) OpenView(st AssetState, a model.Asset) AssetState {
	st.Notices = nil
	st.Selected = &a
	st.Form = AssetFormFrom(a)
	st.Modal = Modal{Open: true, Mode: ModeView}
	return st
}

// Close dismisses the modal.
func (v *AssetView) Close(st AssetState) AssetState {
	st.Modal = Modal{}
	st.Selected = nil
	st.Form = AssetForm{}
	return st
}

// Submit creates or updates the asset from the form.
func (v *AssetView) Submit(ctx context.Context, st AssetState) (AssetState, error) {
	st.Notices = nil
	payload, err := st.Form.Payload()
	if err != nil {
		st.Notices = []Notice{{Level: LevelWarning, Message: err.Error()}}
		return st, err
	}

	var env *apiclient.Envelope
	action, id := actionCreate, int64(0)
	if st.Modal.Mode == ModeEdit {
		if st.Selected == nil {
			return st, ErrNoSelection
		}
		action, id = actionUpdate, st.Selected.ID
		env, err = v.assets.Update(ctx, id, payload)
	} else {
		env, err = v.assets.Create(ctx, payload)
		id = createdID(env)
	}

	notice, err := v.rec.outcome(ctx, ResourceAsset, action, id, env, err, "Lỗi: ")
	st.Notices = []Notice{notice}
	if err != nil {
		return st, err
	}
	st = v.Close(st)
	st = v.Load(ctx, st)
	st.Notices = []Notice{notice}
	return st, nil
}

// Delete removes an asset once confirm approves it.
func (v *AssetView) Delete(ctx context.Context, st AssetState, id int64, confirm Confirmer) (AssetState, error) {
	st.Notices = nil
	if !confirm.Confirm(ctx, promptDeleteAsset) {
		return st, ErrCancelled
	}
	env, err := v.assets.Delete(ctx, id)
	notice, err := v.rec.outcome(ctx, ResourceAsset, actionDelete, id, env, err, "Lỗi: ")
	if err != nil {
		st.Notices = []Notice{notice}
		return st, err
	}
	st = v.Load(ctx, st)
	st.Notices = []Notice{notice}
	return st, nil
}

// History opens the allocation history of an asset.
func (v *AssetView) History(ctx context.Context, st AssetState, a model.Asset) (AssetState, error) {
	st.Notices = nil
	env, err := v.assets.AllocationHistory(ctx, service.Filters{"tai_san_id": a.ID})
	if err != nil {
		st.Notices = []Notice{{Level: LevelError, Message: "Lỗi: " + err.Error()}}
		return st, err
	}
	if !env.OK() {
		st.Notices = []Notice{{Level: LevelError, Message: msgHistoryLoadFailed}}
		return st, &BusinessError{Message: env.Message}
	}
	var records []model.AllocationRecord
	if err := env.DecodeData(&records); err != nil {
		st.Notices = []Notice{{Level: LevelError, Message: msgHistoryLoadFailed}}
		return st, err
	}
	if records == nil {
		records = []model.AllocationRecord{}
	}
	st.History = records
	st.HistoryAsset = &a
	st.HistoryOpen = true
	return st, nil
}

// CloseHistory dismisses the history modal.
func (v *AssetView) CloseHistory(st AssetState) AssetState {
	st.History = nil
	st.HistoryAsset = nil
	st.HistoryOpen = false
	return st
}

// OpenByID fetches one asset and opens it in mode (view or edit).
func (v *AssetView) OpenByID(ctx context.Context, st AssetState, id int64, mode Mode) (AssetState, error) {
	st.Notices = nil
	env, err := v.assets.FindOne(ctx, id)
	if err != nil {
		st.Notices = []Notice{{Level: LevelError, Message: "Lỗi: " + err.Error()}}
		return st, err
	}
	if !env.OK() {
		berr := &BusinessError{Message: env.Message}
		st.Notices = []Notice{{Level: LevelError, Message: berr.Error()}}
		return st, berr
	}
	var a model.Asset
	if err := env.DecodeData(&a); err != nil {
		log.Warn().Err(err).Str("tenant", v.rec.tenant).Int64("id", id).Msg("undecodable asset")
		st.Notices = []Notice{{Level: LevelError, Message: "Lỗi: " + apiclient.MsgFallback}}
		return st, err
	}
	if mode == ModeEdit {
		return v.OpenEdit(st, a), nil
	}
	return v.OpenView(st, a), nil
}
