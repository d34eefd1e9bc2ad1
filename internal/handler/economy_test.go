package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/testing/mocks"
)

func TestHandlePurchaseItem(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*mocks.EconomyService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: map[string]interface{}{"userId": testUserID, "itemType": "seed", "itemCode": "carrot", "quantity": 3},
			setupMock: func(m *mocks.EconomyService) {
				m.On("PurchaseItem", mock.Anything, testUserID, domain.ItemTypeSeed, "carrot", 3).
					Return(&domain.PurchaseResult{Success: true, CoinsLeft: 470, TotalCost: 30, Quantity: 3}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"coins_left":470`,
		},
		{
			name:        "Insufficient funds",
			requestBody: map[string]interface{}{"userId": testUserID, "itemType": "animal", "itemCode": "cow", "quantity": 1},
			setupMock: func(m *mocks.EconomyService) {
				m.On("PurchaseItem", mock.Anything, testUserID, domain.ItemTypeAnimal, "cow", 1).
					Return(nil, domain.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   domain.ErrMsgInsufficientFunds,
		},
		{
			name:           "Product is not tradable",
			requestBody:    map[string]interface{}{"userId": testUserID, "itemType": "product", "itemCode": "egg", "quantity": 1},
			setupMock:      func(m *mocks.EconomyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"itemType":"` + domain.ErrMsgInvalidItemType + `"`,
		},
		{
			name:           "Zero quantity",
			requestBody:    map[string]interface{}{"userId": testUserID, "itemType": "seed", "itemCode": "carrot", "quantity": 0},
			setupMock:      func(m *mocks.EconomyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"quantity"`,
		},
		{
			name:           "Negative quantity",
			requestBody:    map[string]interface{}{"userId": testUserID, "itemType": "seed", "itemCode": "carrot", "quantity": -2},
			setupMock:      func(m *mocks.EconomyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"quantity":"Must be greater than 0"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.EconomyService{}
			tt.setupMock(svc)

			w := postJSON(t, NewEconomyHandler(svc).HandlePurchaseItem, tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleSellItem(t *testing.T) {
	InitValidator()

	t.Run("Success", func(t *testing.T) {
		svc := &mocks.EconomyService{}
		svc.On("SellItem", mock.Anything, testUserID, domain.ItemTypeSeed, "wheat", 2).
			Return(&domain.SellResult{Success: true, CoinsEarned: 10, NewCoinBalance: 510, QuantitySold: 2}, nil)

		w := postJSON(t, NewEconomyHandler(svc).HandleSellItem,
			map[string]interface{}{"userId": testUserID, "itemType": "seed", "itemCode": "wheat", "quantity": 2})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp domain.SellResult
		decodeBody(t, w, &resp)
		assert.Equal(t, 510, resp.NewCoinBalance)
		assert.Equal(t, 2, resp.QuantitySold)
	})

	t.Run("Not enough in inventory", func(t *testing.T) {
		svc := &mocks.EconomyService{}
		svc.On("SellItem", mock.Anything, testUserID, domain.ItemTypeSeed, "wheat", 9).
			Return(nil, domain.ErrInsufficientInventory)

		w := postJSON(t, NewEconomyHandler(svc).HandleSellItem,
			map[string]interface{}{"userId": testUserID, "itemType": "seed", "itemCode": "wheat", "quantity": 9})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), domain.ErrMsgInsufficientInventory)
	})
}
