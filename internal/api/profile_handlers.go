package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	errorvalues "github.com/JinuOffl/accountability-partner/internal/error_values"
	"github.com/JinuOffl/accountability-partner/pkg/httputil"
	"github.com/JinuOffl/accountability-partner/pkg/upi"
)

type UpdateUPIRequest struct {
	UPIID string `json:"upi_id"`
}

type PaymentQRRequest struct {
	PayeeUPIID string `json:"payee_upi_id"`
	PayeeName  string `json:"payee_name"`
	Amount     int    `json:"amount"`
}

// PaymentFallbackResponse is the textual rendition returned when the QR
// service cannot produce an image.
type PaymentFallbackResponse struct {
	URI        string `json:"uri"`
	PayeeUPIID string `json:"payee_upi_id"`
	PayeeName  string `json:"payee_name"`
	Amount     int    `json:"amount"`
	Note       string `json:"note"`
}

func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get profile error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	profile, err := s.profileService.GetProfile(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("get profile error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
			return
		}
		logger.Error("get profile error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting profile", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, profile)
	logger.Info("profile provided")
}

func (s *Server) GetFriend(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	_, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get friend error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	friendID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get friend error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid friend id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	profile, err := s.profileService.GetFriendProfile(ctx, friendID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("get friend error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "friend doesn't exist", nil)
			return
		}
		logger.Error("get friend error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting friend data", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, profile)
	logger.Info("friend data provided")
}

func (s *Server) UpdateUPI(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("upi update error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req UpdateUPIRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("upi update error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.profileService.UpdateUPI(ctx, uid, req.UPIID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidUPI):
			logger.Error("upi update error: invalid upi id")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "please enter a valid UPI ID", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("upi update error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("upi update error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating UPI", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":    uid.String(),
		"upi_id": req.UPIID,
	})
	logger.Info("upi updated")
}

// GeneratePaymentQR answers with image/png on success. When the external
// rendering service fails the handler degrades to a JSON payload with
// the deep link, so the client can still present the payment details.
func (s *Server) GeneratePaymentQR(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	_, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("payment qr error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req PaymentQRRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("payment qr error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	payReq := upi.Request{
		PayeeAddress: req.PayeeUPIID,
		PayeeName:    req.PayeeName,
		Amount:       req.Amount,
	}
	png, uri, err := s.paymentService.GenerateQR(ctx, payReq)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("payment qr error: invalid payment fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "please enter valid UPI ID and amount", nil)
			return
		case errors.Is(err, errorvalues.ErrQRUnavailable):
			logger.Error("payment qr error: rendering service unavailable, sending fallback")
			httputil.WriteJSONResponse(w, http.StatusOK, PaymentFallbackResponse{
				URI:        uri,
				PayeeUPIID: req.PayeeUPIID,
				PayeeName:  req.PayeeName,
				Amount:     req.Amount,
				Note:       upi.TransactionNote,
			})
			return
		default:
			logger.Error("payment qr error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while generating payment QR", nil)
			return
		}
	}
	httputil.WriteImageResponse(w, http.StatusOK, "image/png", png)
	logger.Info("payment qr provided")
}
