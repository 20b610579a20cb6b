package merkletree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leafHashes(values ...string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		sum := hashPair(v, "")
		out[i] = sum
	}
	return out
}

func TestBuild_EmptyTreeHasEmptyRoot(t *testing.T) {
	tree := Build(nil)
	assert.Equal(t, 0, tree.Size())
	assert.Equal(t, "", tree.RootHash())
}

func TestBuild_SingleLeafRootIsTheLeaf(t *testing.T) {
	leaves := leafHashes("a")
	tree := Build(leaves)
	assert.Equal(t, 1, tree.Size())
	assert.Equal(t, leaves[0], tree.RootHash())
}

func TestGetProof_EveryLeafVerifies(t *testing.T) {
	leaves := leafHashes("a", "b", "c", "d", "e")
	tree := Build(leaves)

	for i := range leaves {
		proof, ok := tree.GetProof(i)
		require.True(t, ok)
		assert.Equal(t, leaves[i], proof.LeafHash)
		assert.Equal(t, tree.RootHash(), proof.RootHash)
		assert.True(t, VerifyProof(proof), "leaf %d should verify", i)
	}
}

func TestGetProof_OutOfRangeFails(t *testing.T) {
	tree := Build(leafHashes("a", "b"))
	_, ok := tree.GetProof(-1)
	assert.False(t, ok)
	_, ok = tree.GetProof(2)
	assert.False(t, ok)
}

func TestVerifyProof_TamperedLeafFails(t *testing.T) {
	leaves := leafHashes("a", "b", "c")
	tree := Build(leaves)

	proof, ok := tree.GetProof(1)
	require.True(t, ok)

	proof.LeafHash = leaves[0]
	assert.False(t, VerifyProof(proof))
}

func TestVerifyProof_TamperedSiblingFails(t *testing.T) {
	leaves := leafHashes("a", "b", "c", "d")
	tree := Build(leaves)

	proof, ok := tree.GetProof(0)
	require.True(t, ok)
	require.NotEmpty(t, proof.Siblings)

	proof.Siblings[0].Hash = "deadbeef"
	assert.False(t, VerifyProof(proof))
}

func TestBuild_OddLeafCountDuplicatesLast(t *testing.T) {
	leaves := leafHashes("a", "b", "c")
	tree := Build(leaves)
	assert.Equal(t, 3, tree.Size())

	for i := range leaves {
		proof, ok := tree.GetProof(i)
		require.True(t, ok)
		assert.True(t, VerifyProof(proof))
	}
}
