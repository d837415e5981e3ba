package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/render"
	"github.com/taigrr/softrender/pkg/status"
)

// MaxLineLength is the length at which a raw line is rejected.
const MaxLineLength = 1024

// ReadRaw appends the triangles in r to dst. Each line holds nine
// whitespace-separated floats, three vertices of x y z; anything after the
// ninth value is ignored. Empty and malformed lines are skipped.
//
// dst must be empty. A line of MaxLineLength bytes or more aborts with
// status.LineTooLong and leaves dst empty.
func ReadRaw(r io.Reader, dst *render.TriangleBuffer) error {
	if dst == nil || dst.Len() != 0 {
		return fmt.Errorf("read raw: destination not empty: %w", status.InvalidValue)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, MaxLineLength), 64*MaxLineLength)

	var out render.TriangleBuffer
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if len(line) >= MaxLineLength {
			return fmt.Errorf("read raw line %d: %w", n, status.LineTooLong)
		}
		if t, ok := parseRawLine(line); ok {
			out = append(out, t)
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("read raw: %w", status.LineTooLong)
		}
		return fmt.Errorf("read raw: %v: %w", err, status.FileOpenFailed)
	}

	*dst = out
	return nil
}

func parseRawLine(line string) (render.Triangle, bool) {
	fields := strings.Fields(line)
	if len(fields) < 9 {
		return render.Triangle{}, false
	}
	var f [9]float32
	for i := range f {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return render.Triangle{}, false
		}
		f[i] = float32(v)
	}
	return render.Tri(
		math3d.V3(f[0], f[1], f[2]),
		math3d.V3(f[3], f[4], f[5]),
		math3d.V3(f[6], f[7], f[8]),
	), true
}

// LoadRaw reads the raw triangle file at path into dst. A leading ~ is
// expanded to the home directory.
func LoadRaw(path string, dst *render.TriangleBuffer) (err error) {
	if dst == nil || dst.Len() != 0 {
		return fmt.Errorf("load raw %s: destination not empty: %w", path, status.InvalidValue)
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("load raw %s: %v: %w", path, err, status.FileOpenFailed)
	}

	f, err := os.Open(expanded)
	if err != nil {
		return fmt.Errorf("open raw: %v: %w", err, status.FileOpenFailed)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			dst.Reset()
			err = fmt.Errorf("close raw: %v: %w", cerr, status.FileCloseFailed)
		}
	}()

	if err := ReadRaw(f, dst); err != nil {
		return fmt.Errorf("load raw %s: %w", path, err)
	}
	return nil
}

// WriteRaw writes tris one per line in the format ReadRaw accepts. The
// homogeneous weight is dropped.
func WriteRaw(w io.Writer, tris render.TriangleBuffer) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 128)
	for _, t := range tris {
		buf = buf[:0]
		for i, v := range t.V {
			for j, c := range [3]float32{v.X, v.Y, v.Z} {
				if i > 0 || j > 0 {
					buf = append(buf, ' ')
				}
				buf = strconv.AppendFloat(buf, float64(c), 'g', -1, 32)
			}
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("write raw: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write raw: %w", err)
	}
	return nil
}

// SaveRaw writes tris to path.
func SaveRaw(path string, tris render.TriangleBuffer) (err error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("save raw %s: %v: %w", path, err, status.FileOpenFailed)
	}
	f, err := os.Create(expanded)
	if err != nil {
		return fmt.Errorf("create raw: %v: %w", err, status.FileOpenFailed)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close raw: %v: %w", cerr, status.FileCloseFailed)
		}
	}()
	return WriteRaw(f, tris)
}
