package stamp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jamespreed/pdf-quick-text/coords"
	"github.com/jamespreed/pdf-quick-text/engine"
	"github.com/jamespreed/pdf-quick-text/fonts"
	"github.com/jamespreed/pdf-quick-text/observability"
	"github.com/jamespreed/pdf-quick-text/scripting"
	"github.com/jamespreed/pdf-quick-text/session"
)

// Runner executes a recipe against a set of records, producing one output
// PDF per record through a single reusable session. The zero value works;
// every hook is optional.
type Runner struct {
	// Engine overrides the session's default pdfcpu engine.
	Engine engine.Engine
	// Log receives structured progress events.
	Log observability.Logger
	// Tracer wraps each record in a span.
	Tracer observability.Tracer
	// Scripts evaluates expr sources; a goja engine is created on first use
	// when nil.
	Scripts scripting.Engine
}

// Result reports a finished (or aborted) run.
type Result struct {
	RunID   string
	Outputs []string
}

// Run stamps every record in order and stops at the first failure,
// returning the outputs written so far alongside the error. The session is
// reset between records, so every output starts from the pristine template.
func (r *Runner) Run(ctx context.Context, recipe *Recipe, records []Record) (*Result, error) {
	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	log := r.Log
	if log == nil {
		log = observability.NopLogger{}
	}
	tracer := r.Tracer
	if tracer == nil {
		tracer = observability.NopTracer()
	}

	template, err := os.ReadFile(recipe.Template)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	opts := []session.Option{session.WithLogger(log)}
	if r.Engine != nil {
		opts = append(opts, session.WithEngine(r.Engine))
	}
	s, err := session.New(template, opts...)
	if err != nil {
		return nil, fmt.Errorf("load template %s: %w", recipe.Template, err)
	}
	if err := os.MkdirAll(recipe.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	res := &Result{RunID: shortID()}
	log = log.With(observability.String("run_id", res.RunID))
	log.Info("stamp run started",
		observability.String("template", recipe.Template),
		observability.Int("pages", s.PageCount()),
		observability.Int("records", len(records)))
	start := time.Now()

	used := make(map[string]bool)
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		recCtx, span := tracer.StartSpan(ctx, "stamp.record")
		out, err := r.stampRecord(recCtx, s, recipe, rec, used)
		if err != nil {
			span.SetError(err)
			span.Finish()
			log.Error("record failed", observability.Int("record", i+1), observability.Error("err", err))
			return res, fmt.Errorf("record %d: %w", i+1, err)
		}
		span.SetTag("output", out)
		span.Finish()
		res.Outputs = append(res.Outputs, out)
		log.Debug("record stamped", observability.String("output", out))
	}

	log.Info("stamp run finished",
		observability.Int("outputs", len(res.Outputs)),
		observability.Float64("seconds", time.Since(start).Seconds()))
	return res, nil
}

func (r *Runner) stampRecord(ctx context.Context, s *session.Session, recipe *Recipe, rec Record, used map[string]bool) (string, error) {
	raw, err := r.resolve(ctx, recipe.Name, rec)
	if err != nil {
		return "", fmt.Errorf("output name: %w", err)
	}
	base := SafeFilename(raw)
	if base == "" {
		base = "record-" + shortID()
	}
	if used[base] {
		base = base + "-" + shortID()
	}
	used[base] = true

	for _, page := range targetPages(recipe.Fields, s.PageCount()) {
		if err := s.OpenPage(page); err != nil {
			return "", err
		}
		for fi := range recipe.Fields {
			f := &recipe.Fields[fi]
			if f.Page != nil && *f.Page != page {
				continue
			}
			text, err := r.fieldText(ctx, f, rec)
			if err != nil {
				return "", fmt.Errorf("field %d: %w", fi, err)
			}
			p := coords.Point{X: coords.ToPoints(f.X, f.Unit), Y: coords.ToPoints(f.Y, f.Unit)}
			if f.FromTop {
				_, h, err := s.PageSize(page)
				if err != nil || h <= 0 {
					h = coords.LetterHeight
				}
				p = coords.FromTopLeft(p.X, p.Y, h)
			}
			if err := s.AddText(text, p.X, p.Y, f.Size, fonts.Font(f.Font)); err != nil {
				return "", fmt.Errorf("field %d: %w", fi, err)
			}
		}
		if err := s.ClosePage(); err != nil {
			return "", err
		}
	}

	out := filepath.Join(recipe.OutDir, base+".pdf")
	if err := s.SaveFile(out); err != nil {
		return "", err
	}
	if err := s.Reset(); err != nil {
		return "", err
	}
	return out, nil
}

// targetPages returns the sorted set of pages any field lands on. Fields
// without an explicit page stamp every page.
func targetPages(fields []Field, pageCount int) []int {
	set := make(map[int]bool)
	for i := range fields {
		if fields[i].Page == nil {
			for p := 0; p < pageCount; p++ {
				set[p] = true
			}
			break
		}
	}
	for i := range fields {
		if f := &fields[i]; f.Page != nil {
			set[*f.Page] = true
		}
	}
	pages := make([]int, 0, len(set))
	for p := range set {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

func (r *Runner) fieldText(ctx context.Context, f *Field, rec Record) (string, error) {
	if f.Text != "" {
		return f.Text, nil
	}
	return r.resolve(ctx, Source{Column: f.Column, Expr: f.Expr}, rec)
}

func (r *Runner) resolve(ctx context.Context, src Source, rec Record) (string, error) {
	if src.Column != "" {
		v, ok := rec[src.Column]
		if !ok {
			return "", fmt.Errorf("record has no column %q", src.Column)
		}
		return v, nil
	}
	if r.Scripts == nil {
		r.Scripts = scripting.NewEngine()
	}
	if err := r.Scripts.Set("record", map[string]string(rec)); err != nil {
		return "", err
	}
	v, err := r.Scripts.Execute(ctx, src.Expr)
	if err != nil {
		return "", fmt.Errorf("evaluate %q: %w", src.Expr, err)
	}
	if v == nil {
		return "", fmt.Errorf("expression %q returned no value", src.Expr)
	}
	return fmt.Sprint(v), nil
}

func shortID() string {
	return uuid.NewString()[:8]
}
