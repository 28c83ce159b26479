package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"asset-tracker/internal/forms"
	"asset-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ASSET LIST AND CREATION

func (h *Handler) ListAssets(c *gin.Context) {
	choices, err := forms.LoadAssetChoices(c.Request.Context(), h.svc)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.renderAssets(c, http.StatusOK, forms.AssetForm{Status: string(models.AssetGood)}, choices, nil)
}

func (h *Handler) CreateAsset(c *gin.Context) {
	ctx := c.Request.Context()

	choices, err := forms.LoadAssetChoices(ctx, h.svc)
	if err != nil {
		h.fail(c, err)
		return
	}

	var form forms.AssetForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderAssets(c, http.StatusBadRequest, form, choices, map[string]string{"form": "Invalid form data."})
		return
	}

	in, err := form.Validate(choices)
	if err != nil {
		errs, status, _ := fieldErrors(err)
		h.renderAssets(c, status, form, choices, errs)
		return
	}

	asset, err := h.svc.CreateAsset(ctx, in)
	if err != nil {
		if errs, status, ok := fieldErrors(err); ok {
			h.renderAssets(c, status, form, choices, errs)
			return
		}
		h.fail(c, err)
		return
	}

	h.log.Info("asset created", zap.Uint("asset_id", asset.ID))
	h.audit(c, "asset", asset.ID, "create", "Created asset "+assetLabel(asset))
	c.Redirect(http.StatusFound, "/asset")
}

func (h *Handler) renderAssets(c *gin.Context, status int, form forms.AssetForm, choices forms.AssetChoices, errs map[string]string) {
	assets, err := h.svc.ListAssets(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	render(c, status, "assets.html", gin.H{
		"assets":   assets,
		"form":     form,
		"choices":  choices,
		"statuses": forms.StatusChoices,
		"errors":   errs,
	})
}

// ASSET EDITING AND CUSTODY

// editPage is what the asset page needs besides the asset itself.
type editPage struct {
	form       forms.AssetForm
	errors     map[string]string
	custody    map[string]string
	assignForm forms.AssignForm
	returnForm forms.ReturnForm
}

func (h *Handler) ShowAsset(c *gin.Context) {
	asset, ok := h.loadAsset(c)
	if !ok {
		return
	}
	h.renderAsset(c, http.StatusOK, asset, editPage{form: forms.AssetFormFrom(*asset)})
}

func (h *Handler) UpdateAsset(c *gin.Context) {
	ctx := c.Request.Context()

	asset, ok := h.loadAsset(c)
	if !ok {
		return
	}
	choices, err := forms.LoadAssetChoices(ctx, h.svc)
	if err != nil {
		h.fail(c, err)
		return
	}

	var form forms.AssetForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderAsset(c, http.StatusBadRequest, asset, editPage{form: form, errors: map[string]string{"form": "Invalid form data."}})
		return
	}

	in, err := form.Validate(choices)
	if err != nil {
		errs, status, _ := fieldErrors(err)
		h.renderAsset(c, status, asset, editPage{form: form, errors: errs})
		return
	}

	updated, err := h.svc.UpdateAsset(ctx, asset.ID, in)
	if err != nil {
		if errs, status, ok := fieldErrors(err); ok {
			h.renderAsset(c, status, asset, editPage{form: form, errors: errs})
			return
		}
		h.fail(c, err)
		return
	}

	h.audit(c, "asset", updated.ID, "update", "Updated asset "+assetLabel(updated))
	c.Redirect(http.StatusFound, assetURL(updated.ID))
}

func (h *Handler) AssignAsset(c *gin.Context) {
	ctx := c.Request.Context()

	asset, ok := h.loadAsset(c)
	if !ok {
		return
	}
	choices, err := forms.LoadAssetChoices(ctx, h.svc)
	if err != nil {
		h.fail(c, err)
		return
	}

	page := editPage{form: forms.AssetFormFrom(*asset)}
	if err := c.ShouldBind(&page.assignForm); err != nil {
		page.custody = map[string]string{"assign": "Invalid form data."}
		h.renderAsset(c, http.StatusBadRequest, asset, page)
		return
	}

	employeeID, at, err := page.assignForm.Validate(choices.Owners)
	if err == nil {
		_, err = h.svc.AssignAsset(ctx, asset.ID, employeeID, at)
	}
	if err != nil {
		errs, status, ok := fieldErrors(err)
		if !ok {
			h.fail(c, err)
			return
		}
		page.custody = custodyErrors("assign", errs)
		h.renderAsset(c, status, asset, page)
		return
	}

	h.audit(c, "asset", asset.ID, "assign", fmt.Sprintf("Assigned asset %s to employee %d", assetLabel(asset), employeeID))
	c.Redirect(http.StatusFound, assetURL(asset.ID))
}

func (h *Handler) ReturnAsset(c *gin.Context) {
	ctx := c.Request.Context()

	asset, ok := h.loadAsset(c)
	if !ok {
		return
	}

	page := editPage{form: forms.AssetFormFrom(*asset)}
	if err := c.ShouldBind(&page.returnForm); err != nil {
		page.custody = map[string]string{"return": "Invalid form data."}
		h.renderAsset(c, http.StatusBadRequest, asset, page)
		return
	}

	at, reason, err := page.returnForm.Validate()
	if err == nil {
		_, err = h.svc.ReturnAsset(ctx, asset.ID, at, reason)
	}
	if err != nil {
		errs, status, ok := fieldErrors(err)
		if !ok {
			h.fail(c, err)
			return
		}
		page.custody = custodyErrors("return", errs)
		h.renderAsset(c, status, asset, page)
		return
	}

	h.audit(c, "asset", asset.ID, "return", fmt.Sprintf("Returned asset %s (%s)", assetLabel(asset), reason))
	c.Redirect(http.StatusFound, assetURL(asset.ID))
}

func (h *Handler) DeleteAsset(c *gin.Context) {
	asset, ok := h.loadAsset(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAsset(c.Request.Context(), asset.ID); err != nil {
		h.fail(c, err)
		return
	}

	h.audit(c, "asset", asset.ID, "delete", "Deleted asset "+assetLabel(asset))
	c.Redirect(http.StatusFound, "/asset")
}

// loadAsset resolves :id, rendering the error page itself on failure.
func (h *Handler) loadAsset(c *gin.Context) (*models.Asset, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		render(c, http.StatusNotFound, "error.html", gin.H{"status": http.StatusNotFound, "message": "Not found."})
		return nil, false
	}
	asset, err := h.svc.GetAsset(c.Request.Context(), uint(id))
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return asset, true
}

func (h *Handler) renderAsset(c *gin.Context, status int, asset *models.Asset, page editPage) {
	ctx := c.Request.Context()

	choices, err := forms.LoadAssetChoices(ctx, h.svc)
	if err != nil {
		h.fail(c, err)
		return
	}
	history, err := h.svc.AssignmentHistory(ctx, asset.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	var current *models.AssignmentHistory
	for i := range history {
		if history[i].Open() {
			current = &history[i]
		}
	}

	render(c, status, "asset_edit.html", gin.H{
		"asset":      asset,
		"form":       page.form,
		"errors":     page.errors,
		"custody":    page.custody,
		"assignForm": page.assignForm,
		"returnForm": page.returnForm,
		"choices":    choices,
		"statuses":   forms.StatusChoices,
		"reasons":    forms.ReasonChoices,
		"history":    history,
		"current":    current,
	})
}

// custodyErrors prefixes the messages of the assign or return form. Errors
// about the asset as a whole are shown above the form.
func custodyErrors(form string, errs map[string]string) map[string]string {
	out := make(map[string]string, len(errs))
	for field, msg := range errs {
		switch field {
		case "owner", "employee":
			out[form+"_employee"] = msg
		case "date", "assigned_date", "returned_date":
			out[form+"_date"] = msg
		case "reason", "return_reason":
			out[form+"_reason"] = msg
		default:
			out[form] = msg
		}
	}
	return out
}

func assetURL(id uint) string {
	return fmt.Sprintf("/asset/%d", id)
}
