package wgpu_device

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignSpan(t *testing.T) {
	for _, tc := range []struct {
		start, end, limit int
		wantStart, wantEnd int
	}{
		{0, 4, 16, 0, 4},
		{5, 6, 16, 4, 8},
		{13, 14, 16, 12, 16},
		{2, 15, 16, 0, 16},
	} {
		s, e := alignSpan(tc.start, tc.end, tc.limit)
		assert.Equal(t, tc.wantStart, s)
		assert.Equal(t, tc.wantEnd, e)
	}
	assert.Equal(t, 8, align4(5))
	assert.Equal(t, 0, align4(0))
}

func TestVertexFormat(t *testing.T) {
	f, err := VertexFormat(common.DataTypeFloat32, 3)
	require.NoError(t, err)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, f)

	f, err = VertexFormat(common.DataTypeUint8, 4)
	require.NoError(t, err)
	assert.Equal(t, wgpu.VertexFormatUint8x4, f)

	_, err = VertexFormat(common.DataTypeUint8, 3)
	assert.Error(t, err)
	_, err = VertexFormat(common.DataTypeFloat32, 5)
	assert.Error(t, err)
}
