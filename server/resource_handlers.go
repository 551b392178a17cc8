package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jrsteele09/restaurant-console/catalog"
	"github.com/jrsteele09/restaurant-console/gateway"
	"github.com/jrsteele09/restaurant-console/internal/errors"
	"github.com/jrsteele09/restaurant-console/listing"
	"github.com/jrsteele09/restaurant-console/sessions"
	"github.com/jrsteele09/restaurant-console/viewstate"
	"github.com/rs/zerolog/log"
)

// viewParam carries the per tab view key on every list URL and form, so two
// tabs on the same resource never share a controller
const viewParam = "view"

// listView is the body of list.html
type listView struct {
	Resource   catalog.Descriptor
	NewURL     string
	Confirm    *confirmView
	ConfirmURL string
	CancelURL  string
	Deleting   bool
	IsEmpty    bool
	Headers    []string
	Rows       []listRow
	Page       int
	LastPage   int
	Total      int
	HasPrev    bool
	PrevURL    string
	HasNext    bool
	NextURL    string
}

type confirmView struct {
	ID    catalog.ID
	Label string
}

type listRow struct {
	Cells     []string
	EditURL   string
	DeleteURL string
}

// formView is the body of form.html
type formView struct {
	Action    string
	Fields    []formField
	IsEdit    bool
	CancelURL string
}

type formField struct {
	catalog.Field
	Value   string
	Checked bool
	Error   string
}

// InputType maps a field kind onto an <input type>
func (f formField) InputType() string {
	switch f.Kind {
	case catalog.KindNumber, catalog.KindInteger:
		return "number"
	case catalog.KindURL:
		return "url"
	case catalog.KindEmail:
		return "email"
	case catalog.KindTime:
		return "time"
	case catalog.KindDate:
		return "date"
	default:
		return "text"
	}
}

// resourceHandlers serves the list, form and delete routes of one resource
type resourceHandlers[T catalog.Entity] struct {
	s          *Server
	res        catalog.Resource[T]
	collection *gateway.Collection[T]
}

// registerResource mounts every route of res behind its required role
func registerResource[T catalog.Entity](s *Server, res catalog.Resource[T]) {
	h := &resourceHandlers[T]{
		s:          s,
		res:        res,
		collection: gateway.NewCollection[T](s.gateway, res.Endpoint),
	}
	mw := s.HTMLMiddleWare(s.RequireRole(res.RequiredRole))
	route := res.Route

	s.RegisterRouteHandler("GET "+route, ChainMiddleware(h.list(), mw...))
	s.RegisterRouteHandler("POST "+route+RouteSuffixDelete, ChainMiddleware(h.requestDelete(), mw...))
	s.RegisterRouteHandler("POST "+route+RouteSuffixDeleteConfirm, ChainMiddleware(h.confirmDelete(), mw...))
	s.RegisterRouteHandler("POST "+route+RouteSuffixDeleteCancel, ChainMiddleware(h.cancelDelete(), mw...))
	if res.ReadOnly {
		return
	}
	s.RegisterRouteHandler("GET "+route+RouteSuffixNew, ChainMiddleware(h.newForm(), mw...))
	s.RegisterRouteHandler("POST "+route+RouteSuffixNew, ChainMiddleware(h.create(), mw...))
	s.RegisterRouteHandler("GET "+route+RouteSuffixEdit, ChainMiddleware(h.editForm(), mw...))
	s.RegisterRouteHandler("POST "+route+RouteSuffixEdit, ChainMiddleware(h.update(), mw...))
}

// viewKey returns the view key sent with the request, or a new one for a fresh tab
func viewKey(r *http.Request) string {
	key := r.FormValue(viewParam)
	if _, err := uuid.Parse(key); err != nil {
		return uuid.NewString()
	}
	return key
}

// controller returns the view's mounted list controller, creating it on first visit
func (h *resourceHandlers[T]) controller(session sessions.Session, view string) *listing.Controller[T] {
	return viewstate.Mount(h.s.views, session.ID, h.res.Name+"/"+view, func() *listing.Controller[T] {
		return listing.New[T](h.res.Name, h.collection, h.res.PageSize)
	})
}

// load fetches a page and reports whether the request was already answered
func (h *resourceHandlers[T]) load(w http.ResponseWriter, r *http.Request, session sessions.Session, ctrl *listing.Controller[T], page int) bool {
	var err error
	if page > 0 {
		err = ctrl.Load(r.Context(), page)
	} else {
		err = ctrl.Reload(r.Context())
	}
	switch {
	case err == nil, errors.Is(err, errors.ErrSuperseded):
		return false
	case isUnauthenticated(err):
		h.s.endSession(w, r, session)
		return true
	case errors.Is(err, errors.ErrViewClosed):
		// unmounted by a concurrent logout or sweep
		redirectSuccess(w, r, h.res.Route)
		return true
	default:
		log.Warn().Err(err).Str("resource", h.res.Name).Int("page", page).Msg("list load failed")
		return false
	}
}

func (h *resourceHandlers[T]) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessions.FromContext(r.Context())
		view := viewKey(r)
		ctrl := h.controller(session, view)

		page := 0
		if raw := r.URL.Query().Get("page"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				page = n
			} else {
				page = 1
			}
		}
		if h.load(w, r, session, ctrl, page) {
			return
		}
		h.renderList(w, r, http.StatusOK, view, ctrl, r.URL.Query().Get("notice"), r.URL.Query().Get("error"))
	}
}

// requestDelete opens the confirmation for the record; nothing is deleted yet
func (h *resourceHandlers[T]) requestDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessions.FromContext(r.Context())
		view := viewKey(r)
		ctrl := h.controller(session, view)
		id := catalog.ID(r.PathValue("id"))

		err := ctrl.RequestDeleteByID(id)
		if errors.Is(err, errors.ErrNotOnPage) {
			// a fresh controller after a sweep has no items yet
			if h.load(w, r, session, ctrl, 0) {
				return
			}
			err = ctrl.RequestDeleteByID(id)
		}
		if err != nil {
			redirectWithError(w, r, h.pageURL(view, ctrl.State().Page), userMessage(err))
			return
		}
		redirectSuccess(w, r, h.pageURL(view, ctrl.State().Page))
	}
}

// confirmDelete sends the delete for the record the dialog showed, posted as
// id. A failure keeps the dialog open and is rendered in place, since the
// next successful load would clear it.
func (h *resourceHandlers[T]) confirmDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessions.FromContext(r.Context())
		view := viewKey(r)
		ctrl := h.controller(session, view)
		id := catalog.ID(r.PostFormValue("id"))

		err := ctrl.ConfirmDelete(r.Context(), id)
		switch {
		case err == nil:
			redirectSuccess(w, r, withQuery(h.pageURL(view, ctrl.State().Page), "notice", h.res.Singular+" deleted"))
		case isUnauthenticated(err):
			h.s.endSession(w, r, session)
		case errors.Is(err, errors.ErrNoPendingDelete):
			log.Info().Err(err).Str("resource", h.res.Name).Msg("confirm without a matching pending delete")
			redirectWithError(w, r, h.pageURL(view, ctrl.State().Page), userMessage(err))
		case errors.Is(err, errors.ErrViewClosed):
			redirectSuccess(w, r, h.pageURL(view, ctrl.State().Page))
		default:
			log.Warn().Err(err).Str("resource", h.res.Name).Msg("delete failed")
			h.renderList(w, r, http.StatusUnprocessableEntity, view, ctrl, "", userMessage(err))
		}
	}
}

func (h *resourceHandlers[T]) cancelDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessions.FromContext(r.Context())
		view := viewKey(r)
		ctrl := h.controller(session, view)
		ctrl.CancelDelete()
		ctrl.ClearError()
		redirectSuccess(w, r, h.pageURL(view, ctrl.State().Page))
	}
}

func (h *resourceHandlers[T]) newForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderForm(w, r, http.StatusOK, "", nil, nil, "")
	}
}

// create validates locally first; an invalid form never reaches the backend
func (h *resourceHandlers[T]) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.submit(w, r, "", func(ctx context.Context, payload map[string]any) error {
			return h.collection.Create(ctx, payload)
		})
	}
}

func (h *resourceHandlers[T]) editForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessions.FromContext(r.Context())
		id := catalog.ID(r.PathValue("id"))

		fields, err := h.collection.Fields(r.Context(), id)
		switch {
		case isUnauthenticated(err):
			h.s.endSession(w, r, session)
			return
		case errors.Is(err, errors.ErrNotFound):
			redirectWithError(w, r, h.res.Route, h.res.Singular+" no longer exists")
			return
		case err != nil:
			log.Warn().Err(err).Str("resource", h.res.Name).Str("id", string(id)).Msg("failed to load record")
			redirectWithError(w, r, h.res.Route, userMessage(err))
			return
		}
		h.renderForm(w, r, http.StatusOK, id, fields, nil, "")
	}
}

func (h *resourceHandlers[T]) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := catalog.ID(r.PathValue("id"))
		h.submit(w, r, id, func(ctx context.Context, payload map[string]any) error {
			return h.collection.Update(ctx, id, payload)
		})
	}
}

// submit runs the shared create/update flow: validate, send, then redirect
// to the list on success or render the form again with the problems.
func (h *resourceHandlers[T]) submit(w http.ResponseWriter, r *http.Request, id catalog.ID, send func(context.Context, map[string]any) error) {
	session, _ := sessions.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.renderForm(w, r, http.StatusBadRequest, id, nil, nil, "Invalid form data")
		return
	}

	payload, fieldErrs := catalog.ValidateForm(h.res.Fields, r.PostForm)
	if len(fieldErrs) > 0 {
		h.renderForm(w, r, http.StatusUnprocessableEntity, id, formValues(h.res.Fields, r.PostForm), fieldErrs, "")
		return
	}

	err := send(r.Context(), payload)
	switch {
	case err == nil:
		verb := " created"
		if id != "" {
			verb = " updated"
		}
		log.Info().Str("resource", h.res.Name).Str("id", string(id)).Msg(h.res.Singular + verb)
		redirectSuccess(w, r, withQuery(h.res.Route, "notice", h.res.Singular+verb))
	case isUnauthenticated(err):
		h.s.endSession(w, r, session)
	default:
		log.Warn().Err(err).Str("resource", h.res.Name).Msg("save failed")
		h.renderForm(w, r, http.StatusUnprocessableEntity, id, formValues(h.res.Fields, r.PostForm), nil, userMessage(err))
	}
}

func (h *resourceHandlers[T]) renderList(w http.ResponseWriter, r *http.Request, status int, view string, ctrl *listing.Controller[T], notice, errorMsg string) {
	st := ctrl.State()
	if errorMsg == "" && st.Err != nil {
		errorMsg = userMessage(st.Err)
	}

	lv := listView{
		Resource:   h.res.Descriptor,
		NewURL:     h.res.Route + RouteSuffixNew,
		ConfirmURL: withQuery(h.res.Route+RouteSuffixDeleteConfirm, viewParam, view),
		CancelURL:  withQuery(h.res.Route+RouteSuffixDeleteCancel, viewParam, view),
		Deleting:   st.Deleting,
		IsEmpty:    st.IsEmpty(),
		Headers:    h.res.Headers(),
		Rows:       make([]listRow, 0, len(st.Items)),
		Page:       st.Page,
		LastPage:   st.LastPage(),
		Total:      st.TotalCount,
		HasPrev:    st.HasPrev(),
		PrevURL:    h.pageURL(view, st.Page-1),
		HasNext:    st.HasNext(),
		NextURL:    h.pageURL(view, st.Page+1),
	}
	if st.IsConfirmOpen && st.PendingDelete != nil {
		lv.Confirm = &confirmView{ID: (*st.PendingDelete).EntityID(), Label: h.label(*st.PendingDelete)}
	}
	for _, item := range st.Items {
		id := item.EntityID()
		lv.Rows = append(lv.Rows, listRow{
			Cells:     h.res.Row(item),
			EditURL:   h.res.ItemRoute(id) + "/edit",
			DeleteURL: withQuery(h.res.ItemRoute(id)+"/delete", viewParam, view),
		})
	}

	h.s.render(w, r, status, "list.html", pageData{
		Title:       h.res.Title,
		ActiveRoute: h.res.Route,
		Notice:      notice,
		Error:       errorMsg,
		Body:        lv,
	})
}

func (h *resourceHandlers[T]) renderForm(w http.ResponseWriter, r *http.Request, status int, id catalog.ID, values map[string]any, fieldErrs catalog.FieldErrors, errorMsg string) {
	view := formView{
		Action:    h.res.Route + RouteSuffixNew,
		IsEdit:    id != "",
		CancelURL: h.res.Route,
		Fields:    make([]formField, 0, len(h.res.Fields)),
	}
	title := "New " + h.res.Singular
	if view.IsEdit {
		view.Action = h.res.ItemRoute(id) + "/edit"
		title = "Edit " + h.res.Singular
	}
	for _, f := range h.res.Fields {
		field := formField{Field: f, Error: fieldErrs[f.Name]}
		if f.Kind == catalog.KindBool {
			field.Checked, _ = values[f.Name].(bool)
		} else {
			field.Value = formatValue(values[f.Name])
		}
		view.Fields = append(view.Fields, field)
	}

	h.s.render(w, r, status, "form.html", pageData{
		Title:       title,
		ActiveRoute: h.res.Route,
		Error:       errorMsg,
		Body:        view,
	})
}

// label is the text that identifies a record in the confirmation dialog
func (h *resourceHandlers[T]) label(item T) string {
	row := h.res.Row(item)
	if len(row) > 0 && row[0] != "" {
		return row[0]
	}
	return "#" + string(item.EntityID())
}

func (h *resourceHandlers[T]) pageURL(view string, page int) string {
	if page < 1 {
		page = 1
	}
	return withQuery(h.res.Route+"?page="+strconv.Itoa(page), viewParam, view)
}

// formValues turns submitted values back into prefill values so a rejected
// form keeps what the operator typed
func formValues(fields []catalog.Field, submitted map[string][]string) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		vals := submitted[f.Name]
		if len(vals) == 0 {
			continue
		}
		if f.Kind == catalog.KindBool {
			out[f.Name] = vals[0] != ""
			continue
		}
		out[f.Name] = vals[0]
	}
	return out
}

// formatValue renders a backend JSON value into an input value
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
