package service

import (
	"fmt"
	"testing"

	"campusportal/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityStore_RoundTrip(t *testing.T) {
	slots := testutil.NewMemorySlotRepository()
	identity := testutil.NewTestIdentity("S100", "John Doe", "john.doe@university.edu")

	require.NoError(t, NewIdentityStore(slots, "rememberedUser").Save(identity))

	// a fresh store over the same slot sees the same identity
	loaded, err := NewIdentityStore(slots, "rememberedUser").Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, identity, *loaded)

	raw, err := slots.Get("rememberedUser")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"S100","name":"John Doe","email":"john.doe@university.edu"}`, string(raw))
}

func TestIdentityStore_Load(t *testing.T) {
	tests := []struct {
		name          string
		mockValue     []byte
		mockError     error
		expectedNil   bool
		expectedError bool
	}{
		{
			name:        "empty slot",
			mockValue:   nil,
			expectedNil: true,
		},
		{
			name:      "filled slot",
			mockValue: []byte(`{"id":"S1","name":"Ada","email":"ada@university.edu"}`),
		},
		{
			name:          "corrupt slot",
			mockValue:     []byte(`{"id":`),
			expectedNil:   true,
			expectedError: true,
		},
		{
			name:          "storage error",
			mockError:     fmt.Errorf("db error"),
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockSlotRepository)
			if tt.mockValue == nil {
				mockRepo.On("Get", "key").Return(nil, tt.mockError)
			} else {
				mockRepo.On("Get", "key").Return(tt.mockValue, tt.mockError)
			}

			identity, err := NewIdentityStore(mockRepo, "key").Load()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedNil, identity == nil)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestIdentityStore_Errors(t *testing.T) {
	mockRepo := new(testutil.MockSlotRepository)
	mockRepo.On("Put", "key", []byte(`{"id":"S1","name":"","email":""}`)).Return(fmt.Errorf("db error"))
	mockRepo.On("Delete", "key").Return(fmt.Errorf("db error"))

	store := NewIdentityStore(mockRepo, "key")

	err := store.Save(testutil.NewTestIdentity("S1", "", ""))
	assert.ErrorContains(t, err, "failed to write slot key")

	err = store.Clear()
	assert.ErrorContains(t, err, "failed to clear slot key")

	mockRepo.AssertExpectations(t)
}
