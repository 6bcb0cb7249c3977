package linode_test

import (
	"testing"

	"github.com/fivetwenty-io/linode-client/pkg/linode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoint_Collection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		template string
		parents  []string
		want     string
		wantErr  bool
	}{
		{"top level", "linode/instances", nil, "linode/instances", false},
		{"one parent", "domains/{}/records", []string{"12345"}, "domains/12345/records", false},
		{"two parents", "a/{}/b/{}/c", []string{"1", "2"}, "a/1/b/2/c", false},
		{"missing parent", "domains/{}/records", nil, "", true},
		{"extra parent", "linode/instances", []string{"12345"}, "", true},
		{"too few parents", "a/{}/b/{}/c", []string{"1"}, "", true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := linode.NewEndpoint(tc.template, tc.parents...).Collection()
			if tc.wantErr {
				require.ErrorIs(t, err, linode.ErrParentMismatch)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEndpoint_Resource(t *testing.T) {
	t.Parallel()

	got, err := linode.NewEndpoint("domains/{}/records", "12345").Resource("67")
	require.NoError(t, err)
	assert.Equal(t, "domains/12345/records/67", got)

	_, err = linode.NewEndpoint("domains/{}/records").Resource("67")
	require.ErrorIs(t, err, linode.ErrParentMismatch)
}
