package l10n

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type recordingHook struct {
	before []LookupOperation
	after  []*LookupContext
}

func (h *recordingHook) BeforeLookup(ctx *LookupContext) {
	h.before = append(h.before, ctx.Operation)
}

func (h *recordingHook) AfterLookup(ctx *LookupContext) {
	h.after = append(h.after, ctx)
}

func (h *recordingHook) last(t *testing.T) *LookupContext {
	t.Helper()
	if len(h.after) == 0 {
		t.Fatal("hook was not called")
	}
	return h.after[len(h.after)-1]
}

func TestLookupHooksObserveOperations(t *testing.T) {
	recorder := &recordingHook{}
	p := newTestProvider(t, WithLookupHooks(recorder, nil))
	ctx := context.Background()

	if _, _, err := p.Message(ctx, "greeting", "A"); err != nil {
		t.Fatalf("Message: %v", err)
	}
	if _, _, err := p.SelectedMessage(ctx, "gender", "male", "B"); err != nil {
		t.Fatalf("SelectedMessage: %v", err)
	}
	if _, _, err := p.PluralMessage(ctx, "items", 2); err != nil {
		t.Fatalf("PluralMessage: %v", err)
	}
	if _, err := p.Translate("en", "greeting", "C"); err != nil {
		t.Fatalf("Translate: %v", err)
	}

	want := []LookupOperation{OpMessage, OpSelect, OpPlural, OpTranslate}
	if len(recorder.before) != len(want) || len(recorder.after) != len(want) {
		t.Fatalf("hook calls before=%d after=%d, want %d", len(recorder.before), len(recorder.after), len(want))
	}
	for i, op := range want {
		if recorder.before[i] != op {
			t.Fatalf("before[%d] = %q, want %q", i, recorder.before[i], op)
		}
	}

	sel := recorder.after[1]
	if sel.Result != "He is B" || !sel.Found {
		t.Fatalf("select result = %q found=%v", sel.Result, sel.Found)
	}
	if sel.ResourceKey() != "gender[male]" {
		t.Fatalf("select resource key = %q", sel.ResourceKey())
	}
}

func TestLookupHooksPluralMetadata(t *testing.T) {
	recorder := &recordingHook{}
	p := newTestProvider(t, WithLookupHooks(recorder))
	ctx := context.Background()

	if _, _, err := p.PluralMessage(ctx, "items", 4); err != nil {
		t.Fatalf("PluralMessage: %v", err)
	}
	meta, ok := recorder.last(t).PluralMetadata()
	if !ok {
		t.Fatal("expected plural metadata")
	}
	if meta.Category != PluralOther || meta.Count != 4 || meta.Exact {
		t.Fatalf("unexpected metadata %+v", meta)
	}
	if got := recorder.last(t).ResourceKey(); got != "items[other]" {
		t.Fatalf("resource key = %q", got)
	}

	if _, _, err := p.PluralMessage(ctx, "exact", 1); err != nil {
		t.Fatalf("PluralMessage: %v", err)
	}
	meta, _ = recorder.last(t).PluralMetadata()
	if !meta.Exact {
		t.Fatalf("expected exact metadata, got %+v", meta)
	}
	if got := recorder.last(t).ResourceKey(); got != "exact[1]" {
		t.Fatalf("resource key = %q", got)
	}

	if _, _, err := p.PluralMessage(inLocale("ar"), "items", 11); err != nil {
		t.Fatalf("PluralMessage: %v", err)
	}
	meta, _ = recorder.last(t).PluralMetadata()
	if meta.Category != PluralMany || meta.Fallback != PluralOther {
		t.Fatalf("expected many falling back to other, got %+v", meta)
	}

	if _, _, err := p.Message(ctx, "farewell"); err != nil {
		t.Fatalf("Message: %v", err)
	}
	if _, ok := recorder.last(t).PluralMetadata(); ok {
		t.Fatal("message lookups carry no plural metadata")
	}
}

func TestLookupHooksRewrite(t *testing.T) {
	hook := LookupHookFuncs{
		Before: func(ctx *LookupContext) {
			if ctx.Key == "alias" {
				ctx.Key = "farewell"
			}
		},
		After: func(ctx *LookupContext) {
			if ctx.Found {
				ctx.Result = strings.ToUpper(ctx.Result)
			}
		},
	}
	p := newTestProvider(t, WithLookupHooks(hook))

	got, found, err := p.Message(context.Background(), "alias")
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if !found || got != "GOODBYE" {
		t.Fatalf("Message(alias) = %q found=%v", got, found)
	}
}

func TestLookupHooksSeeErrors(t *testing.T) {
	var seen error
	hook := LookupHookFuncs{After: func(ctx *LookupContext) { seen = ctx.Error }}

	p, err := New(
		WithResourceFS(providerFS()),
		WithLocations("classpath:i18n/missing.properties"),
		WithLookupHooks(hook),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, _, err := p.Message(context.Background(), "greeting"); !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
	if !errors.Is(seen, ErrResourceNotFound) {
		t.Fatalf("hook saw %v", seen)
	}
}

func TestLookupContextMetadata(t *testing.T) {
	var nilCtx *LookupContext
	nilCtx.SetMetadata("k", 1)
	if _, ok := nilCtx.MetadataValue("k"); ok {
		t.Fatal("nil context should hold no metadata")
	}

	lc := &LookupContext{}
	lc.SetMetadata("", 1)
	if lc.Metadata != nil {
		t.Fatal("empty keys are ignored")
	}

	lc.SetMetadata(metadataPluralCategory, "FEW")
	meta, ok := lc.PluralMetadata()
	if !ok || meta.Category != PluralFew {
		t.Fatalf("PluralMetadata() = %+v, %v", meta, ok)
	}

	lc.SetMetadata(metadataResourceKey, 42)
	if got := lc.ResourceKey(); got != "" {
		t.Fatalf("ResourceKey() = %q", got)
	}
}
