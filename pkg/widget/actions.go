package widget

import (
	"context"
	"os/exec"
	"slices"

	"github.com/arthur-debert/barkeep/pkg/datasource"
	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/logging"
	"github.com/arthur-debert/barkeep/pkg/metrics"
	"github.com/arthur-debert/barkeep/pkg/schema"
	"github.com/arthur-debert/barkeep/pkg/widgets"
)

// Click runs the callback bound to button.
func (i *Instance) Click(ctx context.Context, button Button) error {
	clicks := i.resolved.Options.Clicks()

	var line string
	switch button {
	case Left:
		line = clicks.OnLeft
	case Middle:
		line = clicks.OnMiddle
	case Right:
		line = clicks.OnRight
	}
	return i.Dispatch(ctx, line)
}

// Dispatch runs a callback line such as "exec explorer.exe". The first word
// names the action, the rest are its arguments. Unknown actions run the
// default action and report ErrCallbackUnknown.
func (i *Instance) Dispatch(ctx context.Context, line string) error {
	words := datasource.SplitArgs(line)
	if len(words) == 0 {
		return nil
	}
	name, args := words[0], words[1:]

	action, err := i.actions.Get(name)
	if err != nil {
		metrics.Dispatches.WithLabelValues(metrics.UnknownAction, "unknown").Inc()
		i.logger.Warn().Str("action", name).Msg("Unknown callback action, running default")

		if fallback, ferr := i.actions.Get(schema.ActionDefault); ferr == nil {
			_ = fallback(ctx, args)
		}
		return errors.Newf(errors.ErrCallbackUnknown, "widget %s has no action %q", i.name, name).
			WithDetails(map[string]interface{}{"widget": i.name, "action": name})
	}

	logging.LogAction(i.name, name, args)
	if err := action(ctx, args); err != nil {
		metrics.Dispatches.WithLabelValues(name, "error").Inc()
		return errors.Wrapf(err, errors.ErrCallbackExecute, "action %s of widget %s failed", name, i.name).
			WithDetail("widget", i.name).
			WithDetail("action", name)
	}
	metrics.Dispatches.WithLabelValues(name, "ok").Inc()
	return nil
}

// RegisterAction adds or replaces a callback action.
func (i *Instance) RegisterAction(name string, action Action) error {
	return i.actions.Replace(name, action)
}

// Actions lists the callback actions the instance accepts.
func (i *Instance) Actions() []string {
	return i.actions.List()
}

func (i *Instance) registerActions() {
	noop := func(context.Context, []string) error { return nil }

	builtin := map[string]Action{
		schema.ActionDefault:     noop,
		schema.ActionDoNothing:   noop,
		schema.ActionToggleLabel: i.toggleLabel,
		schema.ActionUpdateLabel: i.updateLabel,
		schema.ActionExec:        i.exec,
	}
	for name, action := range builtin {
		_ = i.actions.Replace(name, action)
	}

	for _, name := range i.def.Actions {
		if i.actions.Has(name) {
			continue
		}
		if handler, ok := i.def.Handlers[name]; ok {
			_ = i.actions.Replace(name, i.handle(handler))
			continue
		}
		_ = i.actions.Replace(name, i.toggle(name))
	}
}

func (i *Instance) toggleLabel(context.Context, []string) error {
	i.mu.Lock()
	i.showAlt = !i.showAlt
	label := i.render()
	listeners := slices.Clone(i.listeners)
	i.mu.Unlock()

	i.notify(listeners, label)
	return nil
}

// updateLabel refreshes the widget now. Source failures are already reported
// through the fallback label, so they do not fail the action.
func (i *Instance) updateLabel(ctx context.Context, _ []string) error {
	_, _ = i.Update(ctx)
	return nil
}

// exec starts a program and does not wait for it.
func (i *Instance) exec(_ context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(errors.ErrInvalidInput, "exec needs a program to run")
	}

	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	i.logger.Debug().Strs("command", args).Int("pid", cmd.Process.Pid).Msg("Started process")

	go func() {
		if err := cmd.Wait(); err != nil {
			i.logger.Debug().Err(err).Strs("command", args).Msg("Process exited with error")
		}
	}()
	return nil
}

// handle runs a widget handler and renders the new state.
func (i *Instance) handle(h widgets.Handler) Action {
	return func(ctx context.Context, args []string) error {
		if err := h(ctx, i.source, args); err != nil {
			return err
		}
		_, _ = i.Update(ctx)
		return nil
	}
}

// toggle flips a UI flag such as an open menu.
func (i *Instance) toggle(name string) Action {
	return func(context.Context, []string) error {
		i.mu.Lock()
		i.flags[name] = !i.flags[name]
		i.mu.Unlock()
		return nil
	}
}
