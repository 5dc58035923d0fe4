// Copyright 2016 The Eaglefrac Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/io"
)

// AppendLoad appends one record to the reaction-load history of a
// tagged boundary: file boundary_load-<tag>.txt, columns {t, fx, fy}
func AppendLoad(dirout string, tag int, t, fx, fy float64) (err error) {
	fn := filepath.Join(dirout, io.Sf("boundary_load-%d.txt", tag))
	f, err := os.OpenFile(fn, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return
	}
	if st.Size() == 0 {
		_, err = f.WriteString(io.Sf("%23s %23s %23s\n", "t", "fx", "fy"))
		if err != nil {
			return
		}
	}
	_, err = f.WriteString(io.Sf("%23.15e %23.15e %23.15e\n", t, fx, fy))
	return
}

// WriteCod writes the crack-opening profile of one accepted step:
// file cod-<step>.txt, columns {s, w} per sample point of the scanline
func WriteCod(dirout string, step int, s, w []float64) {
	buf := new(bytes.Buffer)
	io.Ff(buf, "%23s %23s\n", "s", "w")
	for i := range s {
		io.Ff(buf, "%23.15e %23.15e\n", s[i], w[i])
	}
	io.WriteFileD(dirout, io.Sf("cod-%06d.txt", step), buf)
}
