package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeDirectory_FetchesOnce(t *testing.T) {
	api := &fakeAPI{types: testTypes}
	d := NewEventTypeDirectory(api, 0, testLogger)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name, err := d.TypeName(context.Background(), "1")
			assert.NoError(t, err)
			assert.Equal(t, "Lecture", name)
		}()
	}
	wg.Wait()

	name, err := d.TypeName(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Laboratory", name)
	assert.Equal(t, int32(1), api.typeCalls.Load())
}

func TestEventTypeDirectory_UnknownTypeFallsBackToID(t *testing.T) {
	d := NewEventTypeDirectory(&fakeAPI{types: testTypes}, 0, testLogger)

	name, err := d.TypeName(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", name)
}

func TestEventTypeDirectory_FailureIsRetried(t *testing.T) {
	api := &fakeAPI{typesErr: errors.New("connection refused")}
	d := NewEventTypeDirectory(api, 0, testLogger)

	_, err := d.TypeName(context.Background(), "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	api.typesErr = nil
	api.types = testTypes
	name, err := d.TypeName(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Lecture", name)
	assert.Equal(t, int32(2), api.typeCalls.Load())
}
