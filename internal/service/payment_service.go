package service

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"

	errorvalues "github.com/JinuOffl/accountability-partner/internal/error_values"
	"github.com/JinuOffl/accountability-partner/pkg/upi"
)

// DefaultQRServiceURL is the public QR rendering endpoint used when no
// QR_SERVICE_URL is configured.
const DefaultQRServiceURL = "https://api.qrserver.com/v1/create-qr-code/"

// maxQRImageSize guards against a misbehaving rendering service.
const maxQRImageSize = 1 << 20

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// PaymentService renders UPI payment requests as QR images through an
// external best-effort service. A failed fetch is not retried, callers
// fall back to the textual deep link.
type PaymentService struct {
	client       HTTPDoer
	qrServiceURL string
}

func NewPaymentService(client HTTPDoer, qrServiceURL string) *PaymentService {
	if client == nil {
		log.Fatal("provided nil http client for payment service")
	}
	if qrServiceURL == "" {
		qrServiceURL = DefaultQRServiceURL
	}
	return &PaymentService{
		client:       client,
		qrServiceURL: qrServiceURL,
	}
}

func (ps *PaymentService) GenerateQR(ctx context.Context, req upi.Request) ([]byte, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", errors.Join(errorvalues.ErrValidation, err)
	}
	uri := req.PayURI()

	q := url.Values{}
	q.Set("size", "300x300")
	q.Set("data", uri)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, ps.qrServiceURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, uri, errors.New("building qr request error: " + err.Error())
	}
	resp, err := ps.client.Do(httpReq)
	if err != nil {
		return nil, uri, errorvalues.ErrQRUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, uri, errorvalues.ErrQRUnavailable
	}
	png, err := io.ReadAll(io.LimitReader(resp.Body, maxQRImageSize))
	if err != nil || len(png) == 0 {
		return nil, uri, errorvalues.ErrQRUnavailable
	}
	return png, uri, nil
}
