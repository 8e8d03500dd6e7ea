package debitcard_test

import (
	"bytes"
	"debitcard-backend/internal/api/v1/debitcard"
	"debitcard-backend/internal/database"
	"debitcard-backend/internal/middleware"
	"debitcard-backend/internal/models"
	"debitcard-backend/internal/utils"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	database.DB = db
}

func createUser(t *testing.T, email string) models.User {
	user := models.User{Name: email, Email: email, Password: "hashedpassword"}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createCard(t *testing.T, owner models.User) models.DebitCard {
	number, err := utils.GenerateCardNumber("4", utils.CardNumberLength)
	require.NoError(t, err)
	card := models.DebitCard{
		UserID:         owner.ID,
		Number:         number,
		Type:           "Visa",
		ExpirationDate: time.Now().AddDate(1, 0, 0),
	}
	require.NoError(t, database.DB.Create(&card).Error)
	return card
}

// newRouter mounts the card routes behind a stand-in for AuthMiddleware.
func newRouter(actingAs models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, actingAs)
		c.Next()
	})
	debitcard.RegisterRoutes(api)
	return r
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type cardResponse struct {
	Status  int                         `json:"status"`
	Message string                      `json:"message"`
	Data    debitcard.DebitCardResponse `json:"data"`
}

type cardListResponse struct {
	Status int                           `json:"status"`
	Data   []debitcard.DebitCardResponse `json:"data"`
}

type validationResponse struct {
	Status int                       `json:"status"`
	Data   utils.ValidationErrorData `json:"data"`
}

func TestCustomerCanSeeAListOfDebitCards(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	bob := createUser(t, "bob@example.com")

	own := map[uint]bool{}
	for i := 0; i < 3; i++ {
		own[createCard(t, alice).ID] = true
	}
	for i := 0; i < 2; i++ {
		createCard(t, bob)
	}

	w := do(newRouter(alice), http.MethodGet, "/api/debit-cards", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cardListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 3)
	for _, card := range resp.Data {
		assert.True(t, own[card.ID])
		assert.Len(t, card.Number, utils.CardNumberLength)
		assert.NotEmpty(t, card.Type)
		assert.False(t, card.ExpirationDate.IsZero())
		assert.True(t, card.IsActive)
	}

	var raw struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	for _, item := range raw.Data {
		for _, key := range []string{"id", "number", "type", "expiration_date", "is_active"} {
			assert.Contains(t, item, key)
		}
	}
}

func TestCustomerCannotSeeAListOfDebitCardsOfOtherCustomers(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	bob := createUser(t, "bob@example.com")

	createCard(t, bob)
	createCard(t, bob)
	mine := createCard(t, alice)

	w := do(newRouter(alice), http.MethodGet, "/api/debit-cards", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cardListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, mine.ID, resp.Data[0].ID)
}

func TestListIsEmptyArrayWhenCustomerHasNoCards(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")

	w := do(newRouter(alice), http.MethodGet, "/api/debit-cards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestCustomerCanCreateADebitCard(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	bob := createUser(t, "bob@example.com")

	// user_id in the body is ignored; the owner is always the caller.
	w := do(newRouter(alice), http.MethodPost, "/api/debit-cards", map[string]interface{}{
		"type":    "Visa",
		"user_id": bob.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp cardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.NotZero(t, resp.Data.ID)
	assert.Equal(t, "Visa", resp.Data.Type)
	assert.True(t, resp.Data.IsActive)
	assert.True(t, utils.LuhnValid(resp.Data.Number))

	var stored models.DebitCard
	require.NoError(t, database.DB.First(&stored, resp.Data.ID).Error)
	assert.Equal(t, alice.ID, stored.UserID)
	assert.Nil(t, stored.DisabledAt)
}

func TestCustomerCannotCreateADebitCardWithWrongValidation(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	r := newRouter(alice)

	tests := []struct {
		name  string
		body  interface{}
		field string
	}{
		{name: "missing type", body: map[string]interface{}{}, field: "type"},
		{name: "empty body", body: nil, field: "type"},
		{name: "type not a string", body: map[string]interface{}{"type": 123}, field: "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/debit-cards", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var resp validationResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotEmpty(t, resp.Data.Errors)
			assert.Equal(t, tt.field, resp.Data.Errors[0].Field)
		})
	}

	var count int64
	database.DB.Model(&models.DebitCard{}).Count(&count)
	assert.Zero(t, count)
}

func TestCustomerCanSeeASingleDebitCardDetails(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	card := createCard(t, alice)

	w := do(newRouter(alice), http.MethodGet, fmt.Sprintf("/api/debit-cards/%d", card.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, card.ID, resp.Data.ID)
	assert.Equal(t, card.Number, resp.Data.Number)
	assert.Equal(t, card.Type, resp.Data.Type)
	assert.True(t, resp.Data.IsActive)
}

func TestCustomerCannotSeeASingleDebitCardDetails(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	bob := createUser(t, "bob@example.com")
	card := createCard(t, bob)
	r := newRouter(alice)

	for _, path := range []string{
		fmt.Sprintf("/api/debit-cards/%d", card.ID),
		fmt.Sprintf("/api/debit-cards/%d", card.ID+100),
		"/api/debit-cards/not-a-number",
	} {
		w := do(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
		assert.NotContains(t, w.Body.String(), card.Number)
	}
}

func TestCustomerCanActivateADebitCard(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	card := createCard(t, alice)
	disabledAt := time.Now().Add(-time.Hour)
	require.NoError(t, database.DB.Model(&card).Update("disabled_at", disabledAt).Error)
	r := newRouter(alice)

	for i := 0; i < 2; i++ {
		w := do(r, http.MethodPut, fmt.Sprintf("/api/debit-cards/%d", card.ID), map[string]interface{}{"is_active": true})
		require.Equal(t, http.StatusOK, w.Code)

		var resp cardResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Data.IsActive)

		var stored models.DebitCard
		require.NoError(t, database.DB.First(&stored, card.ID).Error)
		assert.Nil(t, stored.DisabledAt)
	}
}

func TestCustomerCanDeactivateADebitCard(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	card := createCard(t, alice)
	r := newRouter(alice)

	for i := 0; i < 2; i++ {
		w := do(r, http.MethodPut, fmt.Sprintf("/api/debit-cards/%d", card.ID), map[string]interface{}{"is_active": false})
		require.Equal(t, http.StatusOK, w.Code)

		var resp cardResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Data.IsActive)

		var stored models.DebitCard
		require.NoError(t, database.DB.First(&stored, card.ID).Error)
		assert.NotNil(t, stored.DisabledAt)
	}
}

func TestCustomerCannotUpdateADebitCardWithWrongValidation(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	card := createCard(t, alice)
	r := newRouter(alice)
	path := fmt.Sprintf("/api/debit-cards/%d", card.ID)

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "missing is_active", body: map[string]interface{}{}},
		{name: "empty body", body: nil},
		{name: "string value", body: map[string]interface{}{"is_active": "invalid-value"}},
		{name: "numeric value", body: map[string]interface{}{"is_active": 1}},
		{name: "null value", body: `{"is_active": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPut, path, tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

			var resp validationResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Len(t, resp.Data.Errors, 1)
			assert.Equal(t, "is_active", resp.Data.Errors[0].Field)

			var stored models.DebitCard
			require.NoError(t, database.DB.First(&stored, card.ID).Error)
			assert.Nil(t, stored.DisabledAt)
		})
	}
}

func TestCustomerCannotUpdateADebitCardOfOtherCustomer(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	bob := createUser(t, "bob@example.com")
	card := createCard(t, bob)

	w := do(newRouter(alice), http.MethodPut, fmt.Sprintf("/api/debit-cards/%d", card.ID), map[string]interface{}{"is_active": false})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored models.DebitCard
	require.NoError(t, database.DB.First(&stored, card.ID).Error)
	assert.Nil(t, stored.DisabledAt)
}

func TestCustomerCanDeleteADebitCard(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	card := createCard(t, alice)
	r := newRouter(alice)

	w := do(r, http.MethodDelete, fmt.Sprintf("/api/debit-cards/%d", card.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(r, http.MethodGet, fmt.Sprintf("/api/debit-cards/%d", card.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodGet, "/api/debit-cards", nil)
	var resp cardListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)

	var tombstone models.DebitCard
	require.NoError(t, database.DB.Unscoped().First(&tombstone, card.ID).Error)
	assert.True(t, tombstone.DeletedAt.Valid)
}

func TestCustomerCannotDeleteADebitCardWithTransaction(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	card := createCard(t, alice)
	require.NoError(t, database.DB.Create(&models.DebitCardTransaction{
		DebitCardID:  card.ID,
		Amount:       decimal.NewFromInt(10000),
		CurrencyCode: models.CurrencyIDR,
	}).Error)
	r := newRouter(alice)

	w := do(r, http.MethodDelete, fmt.Sprintf("/api/debit-cards/%d", card.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodGet, fmt.Sprintf("/api/debit-cards/%d", card.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, card.Number, resp.Data.Number)
	assert.Equal(t, card.Type, resp.Data.Type)
	assert.True(t, resp.Data.IsActive)

	var count int64
	database.DB.Model(&models.DebitCardTransaction{}).Where("debit_card_id = ?", card.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCustomerCannotDeleteADebitCardOfOtherCustomer(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	bob := createUser(t, "bob@example.com")
	card := createCard(t, bob)

	w := do(newRouter(alice), http.MethodDelete, fmt.Sprintf("/api/debit-cards/%d", card.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(newRouter(bob), http.MethodGet, fmt.Sprintf("/api/debit-cards/%d", card.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandlersRequireAuthenticatedUser(t *testing.T) {
	setupTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	debitcard.RegisterRoutes(r.Group("/api"))

	w := do(r, http.MethodGet, "/api/debit-cards", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
