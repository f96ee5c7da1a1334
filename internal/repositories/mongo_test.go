package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"pdfdesk/internal/models"
)

func TestUserDoc_RoundTrip(t *testing.T) {
	created := time.Date(2026, 10, 18, 9, 41, 0, 0, time.UTC)
	u := &models.User{
		FirstName:    "Ann",
		LastName:     "Lee",
		Email:        "ann@x.com",
		PasswordHash: "$2a$10$hash",
		UserRole:     "admin",
		CreatedAt:    created,
	}
	u.SetOTP("123456", created.Add(10*time.Minute))

	doc := newUserDoc(u)
	assert.Equal(t, "$2a$10$hash", doc.Password)
	require.NotNil(t, doc.OTP)
	assert.Equal(t, "123456", *doc.OTP)

	doc.ID = bson.NewObjectID()
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var back userDoc
	require.NoError(t, bson.Unmarshal(raw, &back))

	got := back.model()
	assert.Equal(t, doc.ID.Hex(), got.ID)
	assert.Equal(t, "Ann", got.FirstName)
	assert.Equal(t, "ann@x.com", got.Email)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)
	assert.Equal(t, "admin", got.UserRole)
	require.NotNil(t, got.OTP)
	assert.Equal(t, "123456", *got.OTP)
	require.NotNil(t, got.OTPExpiresAt)
	assert.True(t, got.OTPExpiresAt.Equal(created.Add(10*time.Minute)))
	assert.True(t, got.CreatedAt.Equal(created))
}

func TestUserDoc_ClearedOTPIsOmitted(t *testing.T) {
	u := &models.User{Email: "ann@x.com"}
	u.SetOTP("123456", time.Now())
	u.ClearOTP()

	raw, err := bson.Marshal(newUserDoc(u))
	require.NoError(t, err)
	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.NotContains(t, m, "otp")
	assert.NotContains(t, m, "otpExpiresAt")
	assert.NotContains(t, m, "_id")

	var back userDoc
	require.NoError(t, bson.Unmarshal(raw, &back))
	got := back.model()
	assert.Nil(t, got.OTP)
	assert.Nil(t, got.OTPExpiresAt)
}

func TestDocumentDoc_Mapping(t *testing.T) {
	created := time.Date(2026, 10, 18, 9, 41, 0, 0, time.UTC)
	doc := newDocumentDoc(&models.Document{
		UserID:        "u1",
		PDFURL:        "/uploads/a.pdf",
		PDFContent:    "see https://a.test",
		ExtractedURLs: []string{"https://a.test"},
		CreatedAt:     created,
	})
	assert.True(t, doc.ID.IsZero())
	doc.ID = bson.NewObjectID()

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var back documentDoc
	require.NoError(t, bson.Unmarshal(raw, &back))

	got := back.model()
	assert.Equal(t, doc.ID.Hex(), got.ID)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "/uploads/a.pdf", got.PDFURL)
	assert.Equal(t, "see https://a.test", got.PDFContent)
	assert.Equal(t, []string{"https://a.test"}, got.ExtractedURLs)
	assert.True(t, got.CreatedAt.Equal(created))
}

func TestDocumentDoc_NilURLs(t *testing.T) {
	got := documentDoc{ID: bson.NewObjectID()}.model()
	assert.NotNil(t, got.ExtractedURLs)
	assert.Empty(t, got.ExtractedURLs)
}

func TestListExceptFilter(t *testing.T) {
	oid := bson.NewObjectID()

	tests := []struct {
		name string
		id   string
		want bson.M
	}{
		{name: "valid id is excluded", id: oid.Hex(), want: bson.M{"_id": bson.M{"$ne": oid}}},
		{name: "invalid hex matches everyone", id: "not-an-object-id", want: bson.M{}},
		{name: "empty id matches everyone", id: "", want: bson.M{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listExceptFilter(tt.id))
		})
	}
}
