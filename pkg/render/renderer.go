package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formrender/pkg/fieldtypes"
	"github.com/goliatone/go-formrender/pkg/formtemplate"
	"github.com/goliatone/go-formrender/pkg/model"
	"github.com/goliatone/go-formrender/pkg/status"
)

// Renderer writes forms to an output sink. A Renderer is safe for concurrent
// use when its store and hooks are.
type Renderer struct {
	store      status.Store
	hooks      Hooks
	types      *fieldtypes.Registry
	templates  *formtemplate.Cache
	logger     *zap.Logger
	translator Translator
	onMissing  MissingTranslationHandler
	uidPrefix  string
}

// New constructs a Renderer over a status store. WithHooks is required.
func New(store status.Store, opts ...Option) (*Renderer, error) {
	if store == nil {
		return nil, errors.New("render: status store is required")
	}
	r := &Renderer{
		store:     store,
		types:     fieldtypes.NewDefaultRegistry(),
		templates: formtemplate.NewCache(),
		logger:    zap.NewNop(),
		onMissing: missingTranslationDefault,
		uidPrefix: DefaultUIDPrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.hooks == nil {
		return nil, errors.New("render: hooks are required")
	}
	return r, nil
}

// FieldTypes exposes the registry used to resolve field types.
func (r *Renderer) FieldTypes() *fieldtypes.Registry {
	return r.types
}

// Render writes req.Form to w. On failure the returned error is a *Error and
// whatever was written to w is incomplete.
func (r *Renderer) Render(ctx context.Context, w io.Writer, req Request) error {
	if ctx == nil {
		return errors.New("render: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if w == nil {
		return ErrNilWriter
	}
	rc := req.Context
	if rc == nil {
		rc = NewRenderingContext()
	}
	s := &session{
		r:   r,
		ctx: ctx,
		w:   w,
		rc:  rc,
	}
	return s.render(req)
}

// resolveNamespace falls back to the default namespace and warns about
// namespaces that cannot prefix an element identifier.
func (r *Renderer) resolveNamespace(namespace string) string {
	if strings.TrimSpace(namespace) == "" {
		r.logger.Warn("empty namespace, using default",
			zap.String("namespace", model.DefaultNamespace))
		return model.DefaultNamespace
	}
	if !model.ValidNamespaceStart(namespace) {
		r.logger.Warn("namespace should start with a letter, '_' or '$'",
			zap.String("namespace", namespace))
	}
	return namespace
}

// session is the state of one top-level Render call, shared with the
// sub-forms it renders. The first failure sticks and turns every later
// write into a no-op.
type session struct {
	r   *Renderer
	ctx context.Context
	w   io.Writer
	rc  *RenderingContext
	err error
}

// formRun is one form inside a session.
type formRun struct {
	form      *model.Form
	namespace string
	modes     Modes
	req       Request
}

func (s *session) render(req Request) error {
	form := req.Form
	if form == nil {
		return &Error{Namespace: req.Namespace, Err: ErrNilForm}
	}
	namespace := s.r.resolveNamespace(req.Namespace)
	if req.IsSubForm && s.rc.Contains(form.ID) {
		return &Error{FormID: form.ID, Namespace: namespace, Err: ErrRecursiveSubform}
	}

	modes := ResolveModes(form, req.modeRequest())
	if modes.Render == model.RenderModeDisplay || modes.Render == model.RenderModeTemplateEdit {
		defer s.clearStatus(form.ID, namespace)
	}
	restore := s.rc.Scope(Snapshot{
		Form:        form,
		Namespace:   namespace,
		DisplayMode: modes.Display,
		LabelMode:   modes.Label,
		RenderMode:  modes.Render,
	})
	defer restore()

	run := &formRun{form: form, namespace: namespace, modes: modes, req: req}
	s.r.logger.Debug("rendering form",
		zap.String("form", form.ID),
		zap.String("namespace", namespace),
		zap.String("render_mode", string(modes.Render)),
		zap.String("label_mode", string(modes.Label)),
		zap.String("display_mode", string(modes.Display)),
	)

	data, err := s.prepareStatus(run)
	if err != nil {
		s.fail(err)
	}
	if s.err == nil && (!req.IsSubForm || req.IsMultiple) {
		s.fragment(FragmentFormErrors, Attributes{
			AttrForm:        form,
			AttrNamespace:   namespace,
			AttrWrongFields: data.WrongFieldNames(),
		})
	}
	if s.err == nil {
		s.display(run)
	}
	return wrapError(form.ID, namespace, s.err)
}

func (s *session) prepareStatus(run *formRun) (*status.FormStatusData, error) {
	store := s.r.store
	req := run.req
	values := make(map[string]any, len(req.FormValues)+1)
	maps.Copy(values, req.FormValues)
	values[model.FormModeKey] = req.formMode(run.modes.Render)

	data, err := store.Read(s.ctx, run.form, run.namespace)
	if err != nil {
		return nil, fmt.Errorf("render: read status: %w", err)
	}
	reuse := req.ReuseStatus == nil || *req.ReuseStatus
	if !reuse {
		if err := store.Clear(s.ctx, run.form.ID, run.namespace); err != nil {
			return nil, fmt.Errorf("render: clear status: %w", err)
		}
	}
	if !reuse || data.New || req.FormValues != nil {
		if err := store.Load(s.ctx, run.form.ID, run.namespace, values, run.modes.Render); err != nil {
			return nil, fmt.Errorf("render: load status: %w", err)
		}
		if data, err = store.Read(s.ctx, run.form, run.namespace); err != nil {
			return nil, fmt.Errorf("render: read status: %w", err)
		}
	}
	return data, nil
}

func (s *session) readStatus(run *formRun) *status.FormStatusData {
	if s.err != nil {
		return nil
	}
	data, err := s.r.store.Read(s.ctx, run.form, run.namespace)
	if err != nil {
		s.fail(fmt.Errorf("render: read status: %w", err))
		return nil
	}
	return data
}

func (s *session) clearStatus(formID, namespace string) {
	if err := s.r.store.Clear(s.ctx, formID, namespace); err != nil {
		s.r.logger.Error("clearing form status",
			zap.String("form", formID),
			zap.String("namespace", namespace),
			zap.Error(err))
	}
}

func (s *session) display(run *formRun) {
	switch run.modes.Display {
	case model.DisplayModeDefault, model.DisplayModeAligned, model.DisplayModeNone:
		s.defaultDisplay(run)
	case model.DisplayModeTemplate:
		s.templateDisplay(run)
	default:
		s.r.logger.Warn("unsupported display mode",
			zap.String("form", run.form.ID),
			zap.String("display_mode", string(run.modes.Display)))
	}
}

func (s *session) fail(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

func (s *session) write(text string) {
	if s.err != nil || text == "" {
		return
	}
	if _, err := io.WriteString(s.w, text); err != nil {
		s.fail(fmt.Errorf("render: write: %w", err))
	}
}

func (s *session) fragment(name string, attrs Attributes) {
	if s.err != nil {
		return
	}
	if err := s.r.hooks.Fragment(s.w, name, attrs); err != nil {
		s.fail(fmt.Errorf("render: fragment %q: %w", name, err))
	}
}

func (s *session) include(target string, attrs Attributes) {
	if s.err != nil {
		return
	}
	if err := s.r.hooks.Include(s.w, target, attrs); err != nil {
		s.fail(fmt.Errorf("render: include %q: %w", target, err))
	}
}

func (s *session) uid(namespace, formID, fieldName string) string {
	key := model.FieldKey(namespace, formID, fieldName)
	if s.r.uidPrefix == "" {
		return key
	}
	return s.r.uidPrefix + model.NamespaceSeparator + key
}
