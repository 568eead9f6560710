package auth

import (
	"testing"

	"authd/config"

	"github.com/stretchr/testify/assert"
)

func newHasherTestConfig(cost int) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{BcryptCost: cost},
	}
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(newHasherTestConfig(10))

	password := "secret1"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Correct password matches, wrong one does not.
	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("secret2", hash))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher(newHasherTestConfig(10))

	first, err := hasher.Hash("secret1")
	assert.NoError(t, err)
	second, err := hasher.Hash("secret1")
	assert.NoError(t, err)

	// bcrypt generates a fresh salt per hash, so two hashes of the same
	// password never collide.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("secret1", first))
	assert.True(t, hasher.Check("secret1", second))
}

func TestBcryptHasher_CheckMalformedHash(t *testing.T) {
	hasher := NewBcryptHasher(newHasherTestConfig(10))

	// A malformed hash must read as a mismatch, never a panic.
	assert.False(t, hasher.Check("secret1", ""))
	assert.False(t, hasher.Check("secret1", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check("secret1", "$2a$garbage"))
}

func TestBcryptHasher_CostFloor(t *testing.T) {
	// A configured cost below the floor is raised, and a zero-value config
	// falls back to the bcrypt default.
	low := NewBcryptHasher(newHasherTestConfig(4)).(*bcryptHasher)
	assert.Equal(t, minBcryptCost, low.cost)

	unset := NewBcryptHasher(&config.Config{}).(*bcryptHasher)
	assert.GreaterOrEqual(t, unset.cost, minBcryptCost)
}
