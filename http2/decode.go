package http2

import (
	"context"
	"log/slog"
	"strconv"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/httpmsg/header"
	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/message"
)

type decodeState string

const (
	stateScanPseudo  decodeState = "scan-pseudo"
	stateScanRegular decodeState = "scan-regular"
)

type decodeTrigger string

const (
	triggerPseudo  decodeTrigger = "pseudo-field"
	triggerRegular decodeTrigger = "regular-field"
)

var knownPseudo = map[string]bool{
	PseudoMethod:    true,
	PseudoScheme:    true,
	PseudoAuthority: true,
	PseudoPath:      true,
	PseudoStatus:    true,
}

// decoder accumulates one header list. Pseudo-header fields are accepted until the first
// regular field, a pseudo-header field after that is an unhandled trigger.
type decoder struct {
	fsm    *stateless.StateMachine
	pseudo map[string]string
	hdrs   header.Headers
}

func newDecoder() *decoder {
	d := &decoder{pseudo: make(map[string]string, 4)}

	d.fsm = stateless.NewStateMachine(stateScanPseudo)
	d.fsm.Configure(stateScanPseudo).
		InternalTransition(triggerPseudo, d.addPseudo).
		Permit(triggerRegular, stateScanRegular)
	d.fsm.Configure(stateScanRegular).
		OnEntryFrom(triggerRegular, d.addRegular).
		InternalTransition(triggerRegular, d.addRegular)
	d.fsm.OnUnhandledTrigger(func(_ context.Context, state stateless.State, trigger stateless.Trigger, _ []string) error {
		if state == stateScanRegular && trigger == triggerPseudo {
			return errtrace.Wrap(errorutil.NewProtocolStructureError("pseudo-header field after regular fields"))
		}
		return errtrace.Wrap(errorutil.NewProtocolStructureError("unexpected %v in state %v", trigger, state))
	})
	return d
}

func (d *decoder) feed(f header.Field) error {
	trigger := triggerRegular
	if IsPseudo(f.Name) {
		trigger = triggerPseudo
	}
	return errtrace.Wrap(d.fsm.Fire(trigger, f))
}

func fieldArg(args []any) header.Field {
	f, _ := args[0].(header.Field)
	return f
}

func (d *decoder) addPseudo(_ context.Context, args ...any) error {
	f := fieldArg(args)
	if !knownPseudo[f.Name] {
		return errtrace.Wrap(errorutil.NewProtocolStructureError("unknown pseudo-header %q", f.Name))
	}
	if _, ok := d.pseudo[f.Name]; ok {
		return errtrace.Wrap(errorutil.NewProtocolStructureError("duplicate pseudo-header %q", f.Name))
	}
	d.pseudo[f.Name] = f.Value
	return nil
}

func (d *decoder) addRegular(_ context.Context, args ...any) error {
	f := fieldArg(args)
	return errtrace.Wrap(d.hdrs.AppendRaw(f.Name, f.Value))
}

func (d *decoder) build() (message.Message, error) {
	if status, ok := d.pseudo[PseudoStatus]; ok {
		for name := range d.pseudo {
			if name != PseudoStatus {
				return nil, errtrace.Wrap(errorutil.NewProtocolStructureError("request pseudo-header %q in response", name))
			}
		}
		code, err := strconv.Atoi(status)
		if err != nil || len(status) != 3 || code < 100 || code > 599 {
			return nil, errtrace.Wrap(errorutil.NewParseError("invalid status %q", status))
		}
		return &message.Response{Status: code, Headers: d.hdrs}, nil
	}

	method := d.pseudo[PseudoMethod]
	if method == "" {
		return nil, errtrace.Wrap(errorutil.NewProtocolStructureError("missing %s", PseudoMethod))
	}
	authority := d.pseudo[PseudoAuthority]
	if authority == "" {
		authority, _ = d.hdrs.Get("Host")
	}
	if authority == "" {
		return nil, errtrace.Wrap(errorutil.NewProtocolStructureError("missing %s", PseudoAuthority))
	}
	req := &message.Request{
		Method:    method,
		Scheme:    d.pseudo[PseudoScheme],
		Authority: authority,
		Path:      d.pseudo[PseudoPath],
		Headers:   d.hdrs,
	}
	if err := req.Validate(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return req, nil
}

// Decode builds a message from a decompressed header list.
// A list with :status produces a *[message.Response], any other list a *[message.Request].
//
// The list is rejected as a whole:
//   - more fields than the configured maximum fail with [ErrCapacity];
//   - duplicate, unknown or misplaced pseudo-header fields, a missing :method,
//     a missing :authority without a Host field, and request pseudo-header fields
//     next to :status fail with [ErrProtocolStructure];
//   - a :status that is not a 3-digit code in [100, 599] fails with [ErrParse];
//   - malformed regular fields and a malformed :method, :scheme, :authority
//     or :path fail with [ErrValidation].
//
// Regular field values are kept verbatim, surrounding whitespace included.
func (c *Codec) Decode(fields HeaderList) (message.Message, error) {
	if limit := c.maxHeaderListLen(); len(fields) > limit {
		c.log().LogAttrs(context.Background(), slog.LevelDebug, "header list too long",
			slog.Int("fields", len(fields)),
			slog.Int("max_fields", limit),
		)
		return nil, errtrace.Wrap(errorutil.NewCapacityError("%d header fields exceed the limit of %d", len(fields), limit))
	}

	d := newDecoder()
	for i, f := range fields {
		if err := d.feed(f); err != nil {
			d.hdrs.Clear()
			c.log().LogAttrs(context.Background(), slog.LevelDebug, "header list rejected",
				slog.Int("field_index", i),
				slog.Any("field", f),
				slog.Any("error", err),
			)
			return nil, errtrace.Wrap(err)
		}
	}

	msg, err := d.build()
	if err != nil {
		d.hdrs.Clear()
		c.log().LogAttrs(context.Background(), slog.LevelDebug, "header list rejected",
			slog.Any("fields", fields),
			slog.Any("error", err),
		)
		return nil, errtrace.Wrap(err)
	}
	return msg, nil
}
