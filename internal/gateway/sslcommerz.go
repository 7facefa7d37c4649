package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
)

const (
	sslcommerzSandboxURL = "https://sandbox.sslcommerz.com"
	sslcommerzLiveURL    = "https://securepay.sslcommerz.com"

	sessionPath    = "/gwprocess/v4/api.php"
	validationPath = "/validator/api/validationserverAPI.php"
	queryPath      = "/validator/api/merchantTransIDvalidationAPI.php"

	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 1 << 20
)

// SSLCommerzConfig SSLCommerz 설정
type SSLCommerzConfig struct {
	StoreID       string
	StorePassword string
	Sandbox       bool          // 테스트 모드
	BaseURL       string        // 비어 있으면 Sandbox 여부로 결정
	Timeout       time.Duration // 호출당 제한 시간
}

// SSLCommerzGateway SSLCommerz 게이트웨이 구현
type SSLCommerzGateway struct {
	config     SSLCommerzConfig
	baseURL    string
	httpClient *http.Client
}

var _ Gateway = (*SSLCommerzGateway)(nil)

// NewSSLCommerzGateway 생성자
func NewSSLCommerzGateway(config SSLCommerzConfig) *SSLCommerzGateway {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = sslcommerzLiveURL
		if config.Sandbox {
			baseURL = sslcommerzSandboxURL
		}
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	return &SSLCommerzGateway{
		config:  config,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// CreateSession 결제창 세션 생성
func (g *SSLCommerzGateway) CreateSession(ctx context.Context, req *SessionRequest) (*Session, error) {
	form := url.Values{}
	form.Set("store_id", g.config.StoreID)
	form.Set("store_passwd", g.config.StorePassword)
	form.Set("total_amount", req.Amount.String())
	form.Set("currency", domain.Currency)
	form.Set("tran_id", req.TransactionID)
	form.Set("success_url", req.SuccessURL)
	form.Set("fail_url", req.FailURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("ipn_url", req.IPNURL)
	form.Set("cus_name", req.CustomerName)
	form.Set("cus_email", req.CustomerEmail)
	form.Set("cus_phone", req.CustomerMobile)
	form.Set("cus_add1", "N/A")
	form.Set("cus_city", "N/A")
	form.Set("cus_country", "Bangladesh")
	form.Set("shipping_method", "NO")
	form.Set("num_of_item", "1")
	form.Set("product_name", req.ProductName)
	form.Set("product_category", req.ProductCategory)
	form.Set("product_profile", "non-physical-goods")
	form.Set("value_a", req.ValueA)
	form.Set("value_b", req.ValueB)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+sessionPath, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return nil, wrap(OpCreateSession, err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp sessionResponse
	if err := g.do(httpReq, &resp); err != nil {
		return nil, wrap(OpCreateSession, err)
	}

	if !strings.EqualFold(resp.Status, "SUCCESS") || resp.GatewayPageURL == "" {
		reason := resp.FailedReason
		if reason == "" {
			reason = "status " + resp.Status
		}
		return nil, wrap(OpCreateSession, fmt.Errorf("%w: %s", ErrSessionRejected, reason))
	}

	return &Session{
		SessionKey:     resp.SessionKey,
		GatewayPageURL: resp.GatewayPageURL,
		SuccessURL:     req.SuccessURL,
		FailURL:        req.FailURL,
		CancelURL:      req.CancelURL,
	}, nil
}

// ValidateByValID IPN의 val_id로 거래 검증
func (g *SSLCommerzGateway) ValidateByValID(ctx context.Context, valID string) (*Verification, error) {
	q := url.Values{}
	q.Set("val_id", valID)
	q.Set("store_id", g.config.StoreID)
	q.Set("store_passwd", g.config.StorePassword)
	q.Set("v", "1")
	q.Set("format", "json")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+validationPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, wrap(OpValidate, err)
	}

	var resp transactionElement
	if err := g.do(httpReq, &resp); err != nil {
		return nil, wrap(OpValidate, err)
	}
	if resp.Status == "" {
		return nil, wrap(OpValidate, ErrMalformed)
	}

	v, err := resp.verification()
	if err != nil {
		return nil, wrap(OpValidate, err)
	}
	if v.ValID == "" {
		v.ValID = valID
	}
	return v, nil
}

// QueryByTranID 가맹점 거래번호로 거래 조회
func (g *SSLCommerzGateway) QueryByTranID(ctx context.Context, tranID string) (*Verification, error) {
	q := url.Values{}
	q.Set("tran_id", tranID)
	q.Set("store_id", g.config.StoreID)
	q.Set("store_passwd", g.config.StorePassword)
	q.Set("format", "json")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+queryPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, wrap(OpQuery, err)
	}

	var resp queryResponse
	if err := g.do(httpReq, &resp); err != nil {
		return nil, wrap(OpQuery, err)
	}
	if !strings.EqualFold(resp.APIConnect, "DONE") {
		return nil, wrap(OpQuery, fmt.Errorf("%w: APIConnect %s", ErrMalformed, resp.APIConnect))
	}
	if len(resp.Element) == 0 {
		return nil, wrap(OpQuery, ErrNotFound)
	}

	// 같은 거래번호로 여러 시도가 있으면 성공 건을 우선
	chosen := resp.Element[0]
	for _, el := range resp.Element {
		if el.Status == StatusValid || el.Status == StatusValidated {
			chosen = el
			break
		}
	}

	v, err := chosen.verification()
	if err != nil {
		return nil, wrap(OpQuery, err)
	}
	return v, nil
}

// VerifyNotification 가맹점 비밀번호로 IPN 서명 검증
func (g *SSLCommerzGateway) VerifyNotification(n *Notification) error {
	return VerifySignature(n, g.config.StorePassword)
}

func (g *SSLCommerzGateway) do(req *http.Request, out any) error {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// --- SSLCommerz 응답 구조체 ---

type sessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

type queryResponse struct {
	APIConnect     string               `json:"APIConnect"`
	NoOfTransFound flexString           `json:"no_of_trans_found"`
	Element        []transactionElement `json:"element"`
}

type transactionElement struct {
	Status     string     `json:"status"`
	TranID     string     `json:"tran_id"`
	ValID      string     `json:"val_id"`
	Amount     flexString `json:"amount"`
	Currency   string     `json:"currency"`
	BankTranID string     `json:"bank_tran_id"`
	CardType   string     `json:"card_type"`
	CardIssuer string     `json:"card_issuer"`
	RiskLevel  flexString `json:"risk_level"`
	RiskTitle  string     `json:"risk_title"`
	Error      string     `json:"error"`
}

func (e transactionElement) verification() (*Verification, error) {
	amount, err := parseAmount(string(e.Amount))
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q", ErrMalformed, e.Amount)
	}
	return &Verification{
		Status:            strings.ToUpper(e.Status),
		TransactionID:     e.TranID,
		ValID:             e.ValID,
		Amount:            amount,
		Currency:          e.Currency,
		BankTransactionID: e.BankTranID,
		CardType:          e.CardType,
		CardIssuer:        e.CardIssuer,
		RiskLevel:         string(e.RiskLevel),
		RiskTitle:         e.RiskTitle,
		Error:             e.Error,
	}, nil
}

// flexString 숫자와 문자열을 모두 받는 필드
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = flexString(str)
		return nil
	}
	*f = flexString(s)
	return nil
}
