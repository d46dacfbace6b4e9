// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sizefmt formats byte sizes for chart axis labels.
package sizefmt

import "strconv"

// A Class specifies what kind of unit prefixes to use.
type Class int

const (
	// Decimal indicates values should be scaled by powers of
	// 1000 with SI prefixes, matching decimal MB/s throughput
	// units.
	Decimal Class = iota

	// Binary indicates values should be scaled by powers of 1024
	// with IEC prefixes.
	Binary
)

type factor struct {
	factor float64
	prefix string
}

var siFactors = []factor{
	{1e12, "T"},
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
}

var iecFactors = []factor{
	{1 << 40, "Ti"},
	{1 << 30, "Gi"},
	{1 << 20, "Mi"},
	{1 << 10, "Ki"},
	{1, ""},
}

// Scale formats a byte count with at most four significant digits
// and a unit prefix. Values below the smallest prefix threshold are
// printed unscaled.
func Scale(val float64, cls Class) string {
	factors := siFactors
	if cls == Binary {
		factors = iecFactors
	}
	f := factors[len(factors)-1]
	for _, cand := range factors {
		if val >= cand.factor {
			f = cand
			break
		}
	}
	return strconv.FormatFloat(val/f.factor, 'g', 4, 64) + f.prefix
}
