package acceptance

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/digimonhq/digimon-service/internal/domain"
	"github.com/digimonhq/digimon-service/internal/dto"
)

// crudToken registers a fresh user and returns an access token for the
// protected CRUD endpoints.
func (s *Suite) crudToken(username string) string {
	s.register(username, username+"@example.com", "Password123")
	token, resp := s.login(username, "Password123")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	return token.AccessToken
}

func (s *Suite) createMerchant(accessToken, name string) domain.Merchant {
	body, _ := json.Marshal(dto.CreateMerchantRequest{Name: name})
	resp := s.authedRequest("POST", "/merchants", accessToken, body)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var merchant domain.Merchant
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&merchant))
	return merchant
}

func (s *Suite) TestMerchants_CRUD() {
	accessToken := s.crudToken("merchantowner")

	merchant := s.createMerchant(accessToken, "Digi Mart")
	s.NotZero(merchant.ID)
	s.Equal("Digi Mart", merchant.Name)
	s.NotEmpty(merchant.UserID)

	getResp := s.authedRequest("GET", fmt.Sprintf("/merchants/%d", merchant.ID), accessToken, nil)
	defer getResp.Body.Close()
	s.Equal(http.StatusOK, getResp.StatusCode)

	taxID := "TAX-42"
	body, _ := json.Marshal(dto.CreateMerchantRequest{Name: "Digi Mart 2", TaxID: &taxID})
	updResp := s.authedRequest("PUT", fmt.Sprintf("/merchants/%d", merchant.ID), accessToken, body)
	defer updResp.Body.Close()
	s.Equal(http.StatusOK, updResp.StatusCode)

	var updated domain.Merchant
	s.Require().NoError(json.NewDecoder(updResp.Body).Decode(&updated))
	s.Equal("Digi Mart 2", updated.Name)
	s.Require().NotNil(updated.TaxID)
	s.Equal("TAX-42", *updated.TaxID)

	delResp := s.authedRequest("DELETE", fmt.Sprintf("/merchants/%d", merchant.ID), accessToken, nil)
	defer delResp.Body.Close()
	s.Equal(http.StatusOK, delResp.StatusCode)

	goneResp := s.authedRequest("GET", fmt.Sprintf("/merchants/%d", merchant.ID), accessToken, nil)
	defer goneResp.Body.Close()
	s.Equal(http.StatusNotFound, goneResp.StatusCode)
}

func (s *Suite) TestItems_CRUD() {
	accessToken := s.crudToken("itemowner")
	merchant := s.createMerchant(accessToken, "Item Mart")

	body, _ := json.Marshal(dto.CreateItemRequest{
		Name:       "Digivice",
		Price:      19.99,
		MerchantID: merchant.ID,
	})
	createResp := s.authedRequest("POST", "/items", accessToken, body)
	defer createResp.Body.Close()
	s.Require().Equal(http.StatusCreated, createResp.StatusCode)

	var item domain.Item
	s.Require().NoError(json.NewDecoder(createResp.Body).Decode(&item))
	s.NotZero(item.ID)
	s.Equal("Digivice", item.Name)
	s.Equal(merchant.ID, item.MerchantID)
	s.NotEmpty(item.UserID, "owner must come from the access token")

	tax := 1.5
	body, _ = json.Marshal(dto.CreateItemRequest{
		Name:       "Digivice v2",
		Price:      24.99,
		Tax:        &tax,
		MerchantID: merchant.ID,
	})
	updResp := s.authedRequest("PUT", fmt.Sprintf("/items/%d", item.ID), accessToken, body)
	defer updResp.Body.Close()
	s.Equal(http.StatusOK, updResp.StatusCode)

	var updated domain.Item
	s.Require().NoError(json.NewDecoder(updResp.Body).Decode(&updated))
	s.Equal("Digivice v2", updated.Name)
	s.Equal(24.99, updated.Price)

	delResp := s.authedRequest("DELETE", fmt.Sprintf("/items/%d", item.ID), accessToken, nil)
	defer delResp.Body.Close()
	s.Equal(http.StatusOK, delResp.StatusCode)
}

func (s *Suite) TestItems_GetUnknownID() {
	accessToken := s.crudToken("itemreader")

	resp := s.authedRequest("GET", "/items/999999", accessToken, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestItems_InvalidID() {
	accessToken := s.crudToken("itemreader2")

	resp := s.authedRequest("GET", "/items/not-a-number", accessToken, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestWallets_CRUDAndPagination() {
	accessToken := s.crudToken("walletowner")

	for i := 0; i < 15; i++ {
		body, _ := json.Marshal(dto.CreateWalletRequest{
			Owner:   fmt.Sprintf("owner-%02d", i),
			Balance: float64(i * 10),
		})
		resp := s.authedRequest("POST", "/wallets", accessToken, body)
		resp.Body.Close()
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
	}

	listResp := s.authedRequest("GET", "/wallets?page=2&page_size=10", accessToken, nil)
	defer listResp.Body.Close()
	s.Equal(http.StatusOK, listResp.StatusCode)

	var page dto.WalletList
	s.Require().NoError(json.NewDecoder(listResp.Body).Decode(&page))
	s.Equal(2, page.Page)
	s.Equal(10, page.PageSize)
	s.Equal(15, page.Total)
	s.Len(page.Wallets, 5)
}

func (s *Suite) TestWallets_DefaultPagination() {
	accessToken := s.crudToken("walletowner2")

	for i := 0; i < 12; i++ {
		body, _ := json.Marshal(dto.CreateWalletRequest{
			Owner:   fmt.Sprintf("holder-%02d", i),
			Balance: 100,
		})
		resp := s.authedRequest("POST", "/wallets", accessToken, body)
		resp.Body.Close()
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
	}

	listResp := s.authedRequest("GET", "/wallets", accessToken, nil)
	defer listResp.Body.Close()
	s.Equal(http.StatusOK, listResp.StatusCode)

	var page dto.WalletList
	s.Require().NoError(json.NewDecoder(listResp.Body).Decode(&page))
	s.Equal(1, page.Page)
	s.Equal(10, page.PageSize)
	s.Equal(12, page.Total)
	s.Len(page.Wallets, 10)
}

func (s *Suite) TestTransactions_CRUD() {
	accessToken := s.crudToken("txowner")

	body, _ := json.Marshal(dto.CreateTransactionRequest{
		Sender:   "alice-wallet",
		Receiver: "bob-wallet",
		Amount:   42.5,
	})
	createResp := s.authedRequest("POST", "/transactions", accessToken, body)
	defer createResp.Body.Close()
	s.Require().Equal(http.StatusCreated, createResp.StatusCode)

	var tx domain.Transaction
	s.Require().NoError(json.NewDecoder(createResp.Body).Decode(&tx))
	s.NotZero(tx.ID)
	s.Equal(42.5, tx.Amount)

	getResp := s.authedRequest("GET", fmt.Sprintf("/transactions/%d", tx.ID), accessToken, nil)
	defer getResp.Body.Close()
	s.Equal(http.StatusOK, getResp.StatusCode)

	delResp := s.authedRequest("DELETE", fmt.Sprintf("/transactions/%d", tx.ID), accessToken, nil)
	defer delResp.Body.Close()
	s.Equal(http.StatusOK, delResp.StatusCode)
}

func (s *Suite) TestTransactions_ZeroAmountRejected() {
	accessToken := s.crudToken("txowner2")

	body, _ := json.Marshal(dto.CreateTransactionRequest{
		Sender:   "alice-wallet",
		Receiver: "bob-wallet",
		Amount:   0,
	})
	resp := s.authedRequest("POST", "/transactions", accessToken, body)
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestCRUD_RequiresToken() {
	resp, err := http.Get(s.BaseURL + "/items")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
