package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/pipeline"
	"github.com/matzehuels/combview/pkg/render/frame"
)

// ParseOptions reads render parameters from query values on top of
// defaults:
//
//	format      png, bmp, tiff
//	resolution  physical units per pixel
//	padding     physical border
//	hide        comma-separated categories to hide
//	show        comma-separated categories to show
//	names       display id labels (bool)
//	cells       draw the cell grid (bool)
//	exclude     comma-separated accelerometer ids without cells
//	refresh     bypass the artifact cache (bool)
func ParseOptions(q url.Values, defaults pipeline.Options) (pipeline.Options, error) {
	opts := defaults
	var err error

	if v := q.Get("format"); v != "" {
		opts.Format = v
	}
	if opts.Resolution, err = floatParam(q, "resolution", opts.Resolution); err != nil {
		return opts, err
	}
	if opts.Padding, err = floatParam(q, "padding", opts.Padding); err != nil {
		return opts, err
	}
	for _, toggle := range []struct {
		key     string
		visible bool
	}{{"hide", false}, {"show", true}} {
		key := toggle.key
		for _, name := range splitList(q.Get(key)) {
			c, ok := frame.ParseCategory(name)
			if !ok {
				return opts, errors.New(errors.ErrCodeInvalidInput, "unknown category %q in %s", name, key)
			}
			opts.SetVisible(c, toggle.visible)
		}
	}
	if opts.DisplayNames, err = boolParam(q, "names", opts.DisplayNames); err != nil {
		return opts, err
	}
	if opts.ShowCells, err = boolParam(q, "cells", opts.ShowCells); err != nil {
		return opts, err
	}
	if q.Has("exclude") {
		ids := []int{}
		for _, s := range splitList(q.Get("exclude")) {
			id, err := strconv.Atoi(s)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "exclude: %q is not an accelerometer id", s)
			}
			ids = append(ids, id)
		}
		opts.CellExclude = ids
	}
	refresh, err := boolParam(q, "refresh", pipeline.Bool(false))
	if err != nil {
		return opts, err
	}
	opts.Refresh = *refresh
	return opts, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func floatParam(q url.Values, key string, def float64) (float64, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", key, v)
	}
	return f, nil
}

func requiredFloat(q url.Values, key string) (float64, error) {
	if q.Get(key) == "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "missing query parameter %q", key)
	}
	return floatParam(q, key, 0)
}

func boolParam(q url.Values, key string, def *bool) (*bool, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a boolean", key, v)
	}
	return &b, nil
}
