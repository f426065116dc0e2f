package supplier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"roadstay/config"
	"roadstay/models"
	"roadstay/utils"

	"go.uber.org/zap"
)

// AmadeusAdapter is the live upstream integration, talking to the Amadeus
// hotel APIs over plain HTTP with a client-credentials token.
type AmadeusAdapter struct {
	clientID     string
	clientSecret string
	baseURL      string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time

	httpClient *http.Client
}

// NewAmadeusAdapter builds the live supplier from AppConfig.
func NewAmadeusAdapter() *AmadeusAdapter {
	baseURL := "https://test.api.amadeus.com"
	if config.AppConfig.AmadeusEnv == "production" {
		baseURL = "https://api.amadeus.com"
	}
	if config.AppConfig.AmadeusClientID == "" || config.AppConfig.AmadeusClientSecret == "" {
		utils.GetLogger().Warn("Amadeus API keys are missing; searches will fail until AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET are set")
	}
	return &AmadeusAdapter{
		clientID:     config.AppConfig.AmadeusClientID,
		clientSecret: config.AppConfig.AmadeusClientSecret,
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *AmadeusAdapter) Name() string { return "amadeus" }

func (a *AmadeusAdapter) refreshToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", a.clientID)
	form.Set("client_secret", a.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse token response: %w", err)
	}

	a.mu.Lock()
	a.accessToken = result.AccessToken
	a.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	a.mu.Unlock()

	return nil
}

func (a *AmadeusAdapter) getToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	expired := time.Now().After(a.tokenExpiry)
	token := a.accessToken
	a.mu.Unlock()

	if expired || token == "" {
		if err := a.refreshToken(ctx); err != nil {
			return "", err
		}
		a.mu.Lock()
		token = a.accessToken
		a.mu.Unlock()
	}
	return token, nil
}

func (a *AmadeusAdapter) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	token, err := a.getToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth failed: %w", err)
	}

	var req *http.Request
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, a.baseURL+path, bytes.NewBuffer(body))
	} else {
		req, err = http.NewRequestWithContext(ctx, method, a.baseURL+path, nil)
	}
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("amadeus error (%d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// Search lists hotels around the point and pulls best-rate offers for the
// first ten. Amadeus splits this into two calls.
func (a *AmadeusAdapter) Search(ctx context.Context, params SearchParams) ([]models.Offer, error) {
	listPath := fmt.Sprintf(
		"/v1/reference-data/locations/hotels/by-geocode?latitude=%s&longitude=%s&radius=%d&radiusUnit=MILE",
		formatCoord(params.Lat), formatCoord(params.Lng), int(params.RadiusMiles))

	listBody, err := a.doRequest(ctx, http.MethodGet, listPath, nil)
	if err != nil {
		return nil, fmt.Errorf("hotel list failed: %w", err)
	}

	var hotelList struct {
		Data []struct {
			HotelID string `json:"hotelId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(listBody, &hotelList); err != nil {
		return nil, fmt.Errorf("failed to parse hotel list: %w", err)
	}

	hotelIDs := make([]string, 0, 10)
	for _, h := range hotelList.Data {
		hotelIDs = append(hotelIDs, h.HotelID)
		if len(hotelIDs) == 10 {
			break
		}
	}
	if len(hotelIDs) == 0 {
		return []models.Offer{}, nil
	}

	offersPath := fmt.Sprintf(
		"/v3/shopping/hotel-offers?hotelIds=%s&adults=%d&checkInDate=%s&checkOutDate=%s&currencyCode=USD&bestRateOnly=true",
		url.QueryEscape(strings.Join(hotelIDs, ",")), params.Guests,
		url.QueryEscape(params.CheckIn), url.QueryEscape(params.CheckOut))

	offersBody, err := a.doRequest(ctx, http.MethodGet, offersPath, nil)
	if err != nil {
		return nil, fmt.Errorf("hotel offers failed: %w", err)
	}

	var offersResp struct {
		Data []amadeusHotelOffers `json:"data"`
	}
	if err := json.Unmarshal(offersBody, &offersResp); err != nil {
		return nil, fmt.Errorf("failed to parse hotel offers: %w", err)
	}

	offers := make([]models.Offer, 0, len(offersResp.Data))
	for _, item := range offersResp.Data {
		offers = append(offers, item.normalize())
	}
	return offers, nil
}

type amadeusHotelOffers struct {
	Hotel struct {
		HotelID   string  `json:"hotelId"`
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Address   struct {
			Lines    []string `json:"lines"`
			CityName string   `json:"cityName"`
		} `json:"address"`
	} `json:"hotel"`
	Offers []struct {
		ID   string `json:"id"`
		Room struct {
			Description struct {
				Text string `json:"text"`
			} `json:"description"`
		} `json:"room"`
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
		Policies struct {
			Cancellation struct {
				Description struct {
					Text string `json:"text"`
				} `json:"description"`
			} `json:"cancellation"`
		} `json:"policies"`
	} `json:"offers"`
}

func (item amadeusHotelOffers) normalize() models.Offer {
	address := ""
	if len(item.Hotel.Address.Lines) > 0 {
		address = item.Hotel.Address.Lines[0] + ", " + item.Hotel.Address.CityName
	}

	rates := make([]models.Rate, 0, len(item.Offers))
	for _, o := range item.Offers {
		roomName := o.Room.Description.Text
		if roomName == "" {
			roomName = "Standard Room"
		}
		policy := o.Policies.Cancellation.Description.Text
		if policy == "" {
			policy = "Standard cancellation policy applies."
		}
		total, _ := strconv.ParseFloat(o.Price.Total, 64)
		payload, _ := json.Marshal(map[string]string{"offerId": o.ID})
		rates = append(rates, models.Rate{
			RateID:                 o.ID,
			RoomName:               roomName,
			TotalAmount:            total,
			Currency:               o.Price.Currency,
			PayType:                models.PayTypeAtProperty,
			Refundable:             true,
			CancellationPolicyText: policy,
			SupplierPayload:        payload,
		})
	}

	return models.Offer{
		HotelID:   item.Hotel.HotelID,
		HotelName: item.Hotel.Name,
		Address:   address,
		Lat:       item.Hotel.Latitude,
		Lng:       item.Hotel.Longitude,
		Rates:     rates,
	}
}

// Quote re-prices a rate by refetching its offer.
func (a *AmadeusAdapter) Quote(ctx context.Context, ratePayload json.RawMessage) (QuoteResult, error) {
	var payload struct {
		OfferID string `json:"offerId"`
	}
	if err := json.Unmarshal(ratePayload, &payload); err != nil || payload.OfferID == "" {
		return QuoteResult{OK: false, Error: "invalid rate payload"}, nil
	}

	body, err := a.doRequest(ctx, http.MethodGet, "/v3/shopping/hotel-offers/"+url.PathEscape(payload.OfferID), nil)
	if err != nil {
		return QuoteResult{OK: false, Error: "quote failed"}, nil
	}

	var resp struct {
		Data struct {
			Offers []struct {
				ID    string `json:"id"`
				Price struct {
					Total string `json:"total"`
				} `json:"price"`
			} `json:"offers"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Data.Offers) == 0 {
		return QuoteResult{OK: false, Error: "quote failed"}, nil
	}

	offer := resp.Data.Offers[0]
	total, _ := strconv.ParseFloat(offer.Price.Total, 64)
	updated, _ := json.Marshal(map[string]string{"offerId": offer.ID})
	return QuoteResult{OK: true, FinalTotal: total, UpdatedPayload: updated}, nil
}

// Book places the booking against the quoted offer.
func (a *AmadeusAdapter) Book(ctx context.Context, params BookingParams) (BookingResult, error) {
	var payload struct {
		OfferID string `json:"offerId"`
	}
	if err := json.Unmarshal(params.RatePayload, &payload); err != nil || payload.OfferID == "" {
		return BookingResult{}, fmt.Errorf("invalid rate payload")
	}

	reqBody, err := json.Marshal(map[string]interface{}{
		"data": map[string]interface{}{
			"offerId": payload.OfferID,
			"guests": []map[string]interface{}{
				{
					"name": map[string]string{
						"firstName": params.GuestFirstName,
						"lastName":  params.GuestLastName,
					},
					"contact": map[string]string{
						"phone": params.Phone,
						"email": params.Email,
					},
				},
			},
		},
	})
	if err != nil {
		return BookingResult{}, err
	}

	body, err := a.doRequest(ctx, http.MethodPost, "/v1/booking/hotel-bookings", reqBody)
	if err != nil {
		return BookingResult{}, fmt.Errorf("booking failed: %w", err)
	}

	var resp struct {
		Data []struct {
			ID   string `json:"id"`
			Self string `json:"self"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Data) == 0 {
		return BookingResult{}, fmt.Errorf("failed to parse booking response")
	}

	confirmation := resp.Data[0].ID
	if parts := strings.Split(resp.Data[0].Self, "/"); len(parts) > 0 {
		confirmation = parts[len(parts)-1]
	}
	return BookingResult{BookingID: resp.Data[0].ID, ConfirmationNumber: confirmation}, nil
}

// Cancel is acknowledged but not forwarded; Amadeus cancellation runs over a
// separate OTA flow handled out of band.
func (a *AmadeusAdapter) Cancel(ctx context.Context, bookingID string) error {
	utils.GetLogger().Info("Amadeus cancel acknowledged", zap.String("bookingID", bookingID))
	return nil
}

// CityCoordinates geocodes a city keyword.
func (a *AmadeusAdapter) CityCoordinates(ctx context.Context, cityName string) (*models.Coordinates, error) {
	path := fmt.Sprintf("/v1/reference-data/locations?keyword=%s&subType=CITY", url.QueryEscape(cityName))
	body, err := a.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("geocoding failed: %w", err)
	}

	var resp struct {
		Data []struct {
			GeoCode struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"geoCode"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse geocoding response: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}
	return &models.Coordinates{
		Lat: resp.Data[0].GeoCode.Latitude,
		Lng: resp.Data[0].GeoCode.Longitude,
	}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
