package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_EmptyByDefault(t *testing.T) {
	s := NewStore()

	email, ok := s.Email()
	assert.False(t, ok)
	assert.Empty(t, email)
}

func TestStore_SetEmailLastWriteWins(t *testing.T) {
	s := NewStore()

	s.SetEmail("a@b.com")
	s.SetEmail("not an email")

	email, ok := s.Email()
	assert.True(t, ok)
	assert.Equal(t, "not an email", email)
}

func TestStore_OnChange(t *testing.T) {
	s := NewStore()

	var got []string
	s.OnChange(func(email string) {
		got = append(got, email)
	})

	s.SetEmail("a@b.com")
	s.SetEmail("c@d.com")

	assert.Equal(t, []string{"a@b.com", "c@d.com"}, got)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetEmail("a@b.com")
		}()
		go func() {
			defer wg.Done()
			s.Email()
		}()
	}
	wg.Wait()

	email, ok := s.Email()
	assert.True(t, ok)
	assert.Equal(t, "a@b.com", email)
}
