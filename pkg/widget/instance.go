package widget

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/arthur-debert/barkeep/pkg/datasource"
	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/logging"
	"github.com/arthur-debert/barkeep/pkg/metrics"
	"github.com/arthur-debert/barkeep/pkg/registry"
	"github.com/arthur-debert/barkeep/pkg/rewrite"
	"github.com/arthur-debert/barkeep/pkg/widgets"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Action is a callback action. args are the words following the action name.
type Action func(ctx context.Context, args []string) error

// Listener is told about every new label of an instance.
type Listener func(name, label string)

// Label templates are shared by every instance.
var templates = format.NewCache(0)

// Instance is a running widget.
type Instance struct {
	id       string
	name     string
	def      *widgets.Definition
	resolved *widgets.Resolved
	source   datasource.Source
	actions  registry.Registry[Action]
	logger   zerolog.Logger

	primary       *format.Template
	alternate     *format.Template
	rewriter      *rewrite.Rewriter
	rewriteFields map[string]bool
	maxLength     int
	ellipsis      string
	truncateField string
	fallback      string

	mu        sync.RWMutex
	data      format.Context
	fetched   bool
	fetchErr  error
	rejected  bool
	showAlt   bool
	flags     map[string]bool
	listeners []Listener
}

// New creates an instance named name. When source is nil the widget type
// decides where data comes from.
func New(name string, resolved *widgets.Resolved, source datasource.Source) (*Instance, error) {
	if resolved == nil || resolved.Definition == nil || resolved.Options == nil {
		return nil, errors.Newf(errors.ErrInvalidInput, "widget %s has no resolved options", name)
	}
	def := resolved.Definition

	if source == nil {
		var err error
		if source, err = def.NewSource(resolved.Options); err != nil {
			return nil, errors.Wrapf(err, errors.ErrWidgetInvalid, "cannot create data source for widget %s", name).
				WithDetail("widget", name)
		}
	}

	inst := &Instance{
		id:       uuid.NewString(),
		name:     name,
		def:      def,
		resolved: resolved,
		source:   source,
		actions:  registry.New[Action](),
		flags:    make(map[string]bool),
		logger: logging.GetLogger("widget").With().
			Str("widget", name).
			Str("type", def.Type).
			Logger(),
	}

	if err := inst.compile(); err != nil {
		return nil, err
	}
	inst.registerActions()

	inst.logger.Debug().Str("id", inst.id).Msg("Widget instance created")
	return inst, nil
}

func (i *Instance) compile() error {
	opts := i.resolved.Options
	primary, alternate := opts.Labels()

	var err error
	if i.primary, err = templates.Get(primary); err != nil {
		return errors.Wrapf(err, errors.ErrTemplateParse, "invalid label of widget %s", i.name).
			WithDetail("widget", i.name)
	}
	if i.alternate, err = templates.Get(alternate); err != nil {
		return errors.Wrapf(err, errors.ErrTemplateParse, "invalid alternate label of widget %s", i.name).
			WithDetail("widget", i.name)
	}

	if rw, ok := opts.(widgets.Rewriting); ok && len(rw.RewriteRules()) > 0 {
		i.rewriter, err = rewrite.Compile(rw.RewriteRules())
		if err != nil {
			i.logger.Warn().Err(err).Msg("Some rewrite rules are invalid and will be skipped")
		}
		i.rewriteFields = make(map[string]bool)
		for _, path := range rw.RewriteFields() {
			i.rewriteFields[path] = true
		}
	}

	if tr, ok := opts.(widgets.Truncating); ok {
		i.maxLength, i.ellipsis = tr.MaxLength()
		if ft, ok := opts.(widgets.FieldTruncating); ok {
			i.truncateField = ft.TruncateField()
		}
	}

	if fb, ok := opts.(widgets.Fallback); ok {
		i.fallback = fb.FallbackLabel()
	}
	return nil
}

// ID is unique per instance, two bars showing the same widget get two ids.
func (i *Instance) ID() string {
	return i.id
}

func (i *Instance) Name() string {
	return i.name
}

func (i *Instance) Definition() *widgets.Definition {
	return i.def
}

// Options returns the typed options record.
func (i *Instance) Options() widgets.Options {
	return i.resolved.Options
}

// Values returns the resolved option mapping.
func (i *Instance) Values() map[string]any {
	return i.resolved.Values
}

func (i *Instance) Source() datasource.Source {
	return i.source
}

// Interval returns the refresh period and whether the widget polls at all.
func (i *Instance) Interval() (time.Duration, bool) {
	p, ok := i.resolved.Options.(widgets.Periodic)
	if !ok {
		return 0, false
	}
	return p.Interval(), true
}

// OnChange registers a listener called after every render caused by an
// update or an action.
func (i *Instance) OnChange(fn Listener) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.listeners = append(i.listeners, fn)
}

// Update fetches fresh data and renders the label. When the source fails the
// label falls back to the widget fallback label, or keeps the last data, and
// the error is returned for logging only.
func (i *Instance) Update(ctx context.Context) (string, error) {
	start := time.Now()
	data, err := i.source.Fetch(ctx)

	i.mu.Lock()
	if err != nil {
		i.fetchErr = err
		metrics.SourceErrors.WithLabelValues(i.def.Type).Inc()
		i.logger.Warn().Err(err).Msg("Data source failed")
	} else {
		data = widgets.Derived(i.resolved.Options, data)
		i.data = data
		i.fetched = true
		i.fetchErr = nil
		if filter, ok := i.resolved.Options.(widgets.Filter); ok {
			i.rejected = !filter.Accepts(data)
		}
	}
	label := i.render()
	listeners := slices.Clone(i.listeners)
	i.mu.Unlock()

	metrics.Renders.WithLabelValues(i.def.Type).Inc()
	metrics.UpdateDuration.WithLabelValues(i.def.Type).Observe(time.Since(start).Seconds())
	i.notify(listeners, label)

	if err != nil {
		return label, errors.Wrapf(err, errors.ErrSourceFetch, "update of widget %s failed", i.name).
			WithDetail("widget", i.name)
	}
	return label, nil
}

// Render returns the active label for the latest data.
func (i *Instance) Render() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.render()
}

// Parts returns the active label split into span and text parts.
func (i *Instance) Parts() []format.Part {
	return format.SplitParts(i.Render())
}

// ShowingAlt reports whether the alternate label is active.
func (i *Instance) ShowingAlt() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.showAlt
}

// Flag reports the state of a toggle action such as toggle_calendar.
func (i *Instance) Flag(action string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.flags[action]
}

// Visible is false when the widget hides itself on empty data.
func (i *Instance) Visible() bool {
	h, ok := i.resolved.Options.(widgets.Hiding)
	if !ok || !h.HideEmpty() {
		return true
	}

	i.mu.RLock()
	defer i.mu.RUnlock()
	return !empty(i.data[datasource.DataKey])
}

func (i *Instance) render() string {
	if i.rejected || (i.fallback != "" && (!i.fetched || i.fetchErr != nil)) {
		return i.fallback
	}

	tmpl := i.primary
	if i.showAlt {
		tmpl = i.alternate
	}

	label := tmpl.RenderFunc(i.data, i.transform)
	if limit, ellipsis := i.labelLimit(); limit > 0 {
		label = format.MapText(label, func(s string) string {
			return format.Truncate(s, limit, ellipsis)
		})
	}
	return label
}

// labelLimit returns the length limit of the active label.
func (i *Instance) labelLimit() (int, string) {
	if lt, ok := i.resolved.Options.(widgets.LabelTruncating); ok {
		primary, alternate, ellipsis := lt.LabelLimits(i.data)
		if i.showAlt {
			return alternate, ellipsis
		}
		return primary, ellipsis
	}
	if i.truncateField != "" {
		return 0, ""
	}
	return i.maxLength, i.ellipsis
}

// transform runs the rewrite stage on raw placeholder values.
func (i *Instance) transform(path, value string) string {
	if i.rewriteFields[path] {
		value = i.rewriter.Apply(value)
	}
	if i.truncateField != "" && path == i.truncateField {
		value = format.Truncate(value, i.maxLength, i.ellipsis)
	}
	return value
}

func (i *Instance) notify(listeners []Listener, label string) {
	for _, fn := range listeners {
		fn(i.name, label)
	}
}

func empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}
