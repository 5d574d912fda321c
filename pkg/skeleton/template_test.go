package skeleton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, rows ...string) GridTemplate {
	t.Helper()
	tmpl, err := ParseGridTemplate(rows...)
	require.NoError(t, err)
	return tmpl
}

func TestMirrorPlaneTop(t *testing.T) {
	blackUp := parse(t,
		"...", "...", "BBB",
		"...", "...", "BBB",
		"...", "...", "BBB",
	)
	blackDown := parse(t,
		"BBB", "...", "...",
		"BBB", "...", "...",
		"BBB", "...", "...",
	)
	assert.True(t, blackDown.Equal(blackUp.MirrorInPlane(PlaneXZ)), "got %v", blackUp.MirrorInPlane(PlaneXZ))
}

func TestMirrorPlane(t *testing.T) {
	tests := []struct {
		plane Plane
		want  GridTemplate
	}{
		{PlaneXY, parse(t,
			"WWW", "WWW", "WWW",
			"XXW", "XBW", "WWW",
			"BXW", "XXW", "WWW",
		)},
		{PlaneXZ, parse(t,
			"WWW", "WWW", "WWW",
			"WWW", "WBX", "WXX",
			"WWW", "WXX", "WXB",
		)},
		{PlaneYZ, parse(t,
			"WXB", "WXX", "WWW",
			"WXX", "WBX", "WWW",
			"WWW", "WWW", "WWW",
		)},
	}
	for _, tt := range tests {
		got := B1USW.MirrorInPlane(tt.plane)
		assert.True(t, tt.want.Equal(got), "plane %d: got %v", tt.plane, got)
	}
}

func TestReflect(t *testing.T) {
	b2R1 := parse(t,
		"WXX", "WXX", "WWW",
		"WXB", "WBX", "WWW",
		"WXX", "WXX", "WWW",
	)
	b2R2 := parse(t,
		"WWW", "WWW", "WWW",
		"WXX", "WBX", "WXX",
		"WXX", "WXB", "WXX",
	)
	b3R3 := parse(t,
		"WWW", "WWW", "WWW",
		"XXX", "XBX", "XXX",
		"XXX", "XBX", "XXX",
	)
	assert.True(t, b2R1.Equal(B2USW.Reflect(R1)), "got %v", B2USW.Reflect(R1))
	assert.True(t, b2R2.Equal(B2USW.Reflect(R2)), "got %v", B2USW.Reflect(R2))
	assert.True(t, b3R3.Equal(B3USW.Reflect(R3)), "got %v", B3USW.Reflect(R3))
}

func TestMirrorTwiceIsIdentity(t *testing.T) {
	for _, tmpl := range []GridTemplate{B1USW, B2USW, B3USW} {
		for _, p := range []Plane{PlaneXY, PlaneXZ, PlaneYZ} {
			assert.True(t, tmpl.Equal(tmpl.MirrorInPlane(p).MirrorInPlane(p)))
		}
		for _, r := range []Reflection{R1, R2, R3} {
			assert.True(t, tmpl.Equal(tmpl.Reflect(r).Reflect(r)))
		}
	}
}

func TestParseRejectsMalformedRows(t *testing.T) {
	_, err := ParseGridTemplate("WWW")
	assert.Error(t, err)
	_, err = ParseGridTemplate("WWW", "WWW", "WWW", "WWW", "WWW", "WWW", "WWW", "WWW", "WW")
	assert.Error(t, err)
	_, err = ParseGridTemplate("WWW", "WWW", "WWW", "WWW", "WWW", "WWW", "WWW", "WWW", "WWQ")
	assert.Error(t, err)
}

func TestOrbit(t *testing.T) {
	all := Orbit()
	require.Len(t, all, 26)

	kinds := map[int]int{}
	for _, tmpl := range all {
		side := tmpl.openSide()
		kinds[nonZero(cell{side[0], side[1], side[2]})]++
	}
	assert.Equal(t, map[int]int{1: 6, 2: 12, 3: 8}, kinds)

	for i := range Directions {
		assert.Len(t, DirectionalTemplates(i), 7, "direction %v", Directions[i])
	}
}

func TestMatches(t *testing.T) {
	var n Neighbourhood
	n[1][1][1] = true
	n[1][0][1] = true
	assert.False(t, B3USW.Matches(&n), "curve end point must stay")

	n[0][0][1] = true
	assert.True(t, B3USW.Matches(&n))

	n[1][2][1] = true
	assert.False(t, B3USW.Matches(&n), "white cell is solid")

	var blacks Neighbourhood
	tmpl := parse(t,
		"...", "...", "...",
		"...", ".B.", "...",
		"...", "...", "...",
	)
	assert.False(t, tmpl.Matches(&blacks))
	blacks[1][1][1] = true
	assert.True(t, tmpl.Matches(&blacks), "templates without X cells only need their black cells")
}
