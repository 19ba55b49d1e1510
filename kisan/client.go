package kisan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/AgrI-Mitra/bff/util"
)

// Sentinel messages returned by the PM-Kisan portal. Guards route on these
// strings verbatim, so they must not be reworded.
const MSG_OTP_SENT = "OTP send successfully!"
const MSG_OTP_NOT_VERIFIED = "OTP not verified"
const MSG_OTP_VERIFIED = "OTP verified successfully!"
const MSG_TRY_AGAIN = "Try again"
const MSG_INVALID_IDENTIFIER = "Please enter a valid Beneficiary ID/Aadhaar Number/Phone number"
const MSG_MULTIPLE_RECORDS = "This mobile number taged with multiple records."

func NoRecordFoundMessage(identifier string) string {
	return fmt.Sprintf("No Record Found for this (%s) Aadhar/Ben_id/Mobile.", identifier)
}

// Beneficiary is the decrypted beneficiary detail returned by the portal.
type Beneficiary struct {
	BeneficiaryName       string            `json:"BeneficiaryName"`
	FatherName            string            `json:"FatherName"`
	DOB                   string            `json:"DOB"`
	Address               string            `json:"Address"`
	DateOfRegistration    string            `json:"DateOfRegistration"`
	LatestInstallmentPaid string            `json:"LatestInstallmentPaid"`
	RegNo                 string            `json:"Reg_No"`
	StateName             string            `json:"StateName"`
	DistrictName          string            `json:"DistrictName"`
	SubDistrictName       string            `json:"SubDistrictName"`
	VillageName           string            `json:"VillageName"`
	EKYCStatus            string            `json:"eKYC_Status"`
	StatusFlags           map[string]string `json:"statusFlags"`
}

// Client is the portal surface the flow services invoke. Every method maps
// to one upstream call; results surface as the portal's own message
// strings so the guards can classify them.
type Client interface {
	SendOTP(ctx context.Context, identifier string, shape util.IdentifierShape) (string, error)
	VerifyOTP(ctx context.Context, identifier string, otp string, shape util.IdentifierShape) (string, error)
	BeneficiaryStatus(ctx context.Context, identifier string, shape util.IdentifierShape) (*Beneficiary, error)
	ValidatePhoneNumber(ctx context.Context, phone string) (bool, error)
	SoilHealthCard(ctx context.Context, phone string) (string, error)
}

type httpClient struct {
	baseUrl string
	token   string
	client  *http.Client
}

var _ Client = new(httpClient)

func NewHttpClient(baseUrl string, token string) *httpClient {
	return &httpClient{
		baseUrl: baseUrl,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type otpRequest struct {
	Identifier string `json:"identifier"`
	Otp        string `json:"otp,omitempty"`
	Type       string `json:"type"`
	Token      string `json:"token"`
}

type portalResponse struct {
	Message     string            `json:"message"`
	Beneficiary *Beneficiary      `json:"beneficiary,omitempty"`
	StatusFlags map[string]string `json:"statusFlags,omitempty"`
	Valid       bool              `json:"valid,omitempty"`
	Url         string            `json:"url,omitempty"`
}

func (c *httpClient) post(ctx context.Context, path string, body any, out *portalResponse) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("portal returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *httpClient) SendOTP(ctx context.Context, identifier string, shape util.IdentifierShape) (string, error) {
	var res portalResponse
	err := c.post(ctx, "/chatbototp", otpRequest{Identifier: identifier, Type: string(shape), Token: c.token}, &res)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *httpClient) VerifyOTP(ctx context.Context, identifier string, otp string, shape util.IdentifierShape) (string, error) {
	var res portalResponse
	err := c.post(ctx, "/chatbototpverified", otpRequest{Identifier: identifier, Otp: otp, Type: string(shape), Token: c.token}, &res)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *httpClient) BeneficiaryStatus(ctx context.Context, identifier string, shape util.IdentifierShape) (*Beneficiary, error) {
	var res portalResponse
	err := c.post(ctx, "/chatbotbeneficiarystatus", otpRequest{Identifier: identifier, Type: string(shape), Token: c.token}, &res)
	if err != nil {
		return nil, err
	}
	if res.Beneficiary == nil {
		return nil, fmt.Errorf("unable to get user details")
	}
	if res.Beneficiary.StatusFlags == nil {
		res.Beneficiary.StatusFlags = res.StatusFlags
	}
	return res.Beneficiary, nil
}

func (c *httpClient) ValidatePhoneNumber(ctx context.Context, phone string) (bool, error) {
	var res portalResponse
	err := c.post(ctx, "/validatephone", otpRequest{Identifier: phone, Token: c.token}, &res)
	if err != nil {
		return false, err
	}
	return res.Valid, nil
}

func (c *httpClient) SoilHealthCard(ctx context.Context, phone string) (string, error) {
	var res portalResponse
	err := c.post(ctx, "/soilhealthcard", otpRequest{Identifier: phone, Token: c.token}, &res)
	if err != nil {
		return "", err
	}
	if res.Url == "" {
		return "", fmt.Errorf("no soil health card found")
	}
	return res.Url, nil
}
