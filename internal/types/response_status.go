package types

import "fmt"

const (
	ResponseStatusContinue           ResponseStatus = 100
	ResponseStatusSwitchingProtocols ResponseStatus = 101
	ResponseStatusProcessing         ResponseStatus = 102 // [RFC2518]
	ResponseStatusEarlyHints         ResponseStatus = 103 // [RFC8297]

	ResponseStatusOK                   ResponseStatus = 200
	ResponseStatusCreated              ResponseStatus = 201
	ResponseStatusAccepted             ResponseStatus = 202
	ResponseStatusNonAuthoritativeInfo ResponseStatus = 203
	ResponseStatusNoContent            ResponseStatus = 204
	ResponseStatusResetContent         ResponseStatus = 205
	ResponseStatusPartialContent       ResponseStatus = 206
	ResponseStatusMultiStatus          ResponseStatus = 207 // [RFC4918]
	ResponseStatusAlreadyReported      ResponseStatus = 208 // [RFC5842]
	ResponseStatusIMUsed               ResponseStatus = 226 // [RFC3229]

	ResponseStatusMultipleChoices   ResponseStatus = 300
	ResponseStatusMovedPermanently  ResponseStatus = 301
	ResponseStatusFound             ResponseStatus = 302
	ResponseStatusSeeOther          ResponseStatus = 303
	ResponseStatusNotModified       ResponseStatus = 304
	ResponseStatusUseProxy          ResponseStatus = 305
	ResponseStatusTemporaryRedirect ResponseStatus = 307
	ResponseStatusPermanentRedirect ResponseStatus = 308

	ResponseStatusBadRequest                  ResponseStatus = 400
	ResponseStatusUnauthorized                ResponseStatus = 401
	ResponseStatusPaymentRequired             ResponseStatus = 402
	ResponseStatusForbidden                   ResponseStatus = 403
	ResponseStatusNotFound                    ResponseStatus = 404
	ResponseStatusMethodNotAllowed            ResponseStatus = 405
	ResponseStatusNotAcceptable               ResponseStatus = 406
	ResponseStatusProxyAuthenticationRequired ResponseStatus = 407
	ResponseStatusRequestTimeout              ResponseStatus = 408
	ResponseStatusConflict                    ResponseStatus = 409
	ResponseStatusGone                        ResponseStatus = 410
	ResponseStatusLengthRequired              ResponseStatus = 411
	ResponseStatusPreconditionFailed          ResponseStatus = 412
	ResponseStatusContentTooLarge             ResponseStatus = 413
	ResponseStatusURITooLong                  ResponseStatus = 414
	ResponseStatusUnsupportedMediaType        ResponseStatus = 415
	ResponseStatusRangeNotSatisfiable         ResponseStatus = 416
	ResponseStatusExpectationFailed           ResponseStatus = 417
	ResponseStatusMisdirectedRequest          ResponseStatus = 421
	ResponseStatusUnprocessableContent        ResponseStatus = 422
	ResponseStatusLocked                      ResponseStatus = 423 // [RFC4918]
	ResponseStatusFailedDependency            ResponseStatus = 424 // [RFC4918]
	ResponseStatusTooEarly                    ResponseStatus = 425 // [RFC8470]
	ResponseStatusUpgradeRequired             ResponseStatus = 426
	ResponseStatusPreconditionRequired        ResponseStatus = 428 // [RFC6585]
	ResponseStatusTooManyRequests             ResponseStatus = 429 // [RFC6585]
	ResponseStatusRequestHeaderFieldsTooLarge ResponseStatus = 431 // [RFC6585]
	ResponseStatusUnavailableForLegalReasons  ResponseStatus = 451 // [RFC7725]

	ResponseStatusInternalServerError           ResponseStatus = 500
	ResponseStatusNotImplemented                ResponseStatus = 501
	ResponseStatusBadGateway                    ResponseStatus = 502
	ResponseStatusServiceUnavailable            ResponseStatus = 503
	ResponseStatusGatewayTimeout                ResponseStatus = 504
	ResponseStatusHTTPVersionNotSupported       ResponseStatus = 505
	ResponseStatusVariantAlsoNegotiates         ResponseStatus = 506 // [RFC2295]
	ResponseStatusInsufficientStorage           ResponseStatus = 507 // [RFC4918]
	ResponseStatusLoopDetected                  ResponseStatus = 508 // [RFC5842]
	ResponseStatusNetworkAuthenticationRequired ResponseStatus = 511 // [RFC6585]
)

// ResponseStatus is a 3-digit HTTP status code.
type ResponseStatus uint

func (s ResponseStatus) IsValid() bool { return s >= 100 && s <= 599 }

func (s ResponseStatus) IsInformational() bool { return s >= 100 && s < 200 }

func (s ResponseStatus) IsSuccessful() bool { return s >= 200 && s < 300 }

func (s ResponseStatus) IsRedirection() bool { return s >= 300 && s < 400 }

func (s ResponseStatus) IsClientError() bool { return s >= 400 && s < 500 }

func (s ResponseStatus) IsServerError() bool { return s >= 500 && s < 600 }

// Reason returns the registered reason phrase of the status.
// Unregistered codes fall back to the phrase of their class.
func (s ResponseStatus) Reason() ResponseReason {
	if r, ok := responseReasons[s]; ok {
		return r
	}
	switch {
	case s.IsInformational():
		return "Informational"
	case s.IsSuccessful():
		return "Success"
	case s.IsRedirection():
		return "Redirection"
	case s.IsClientError():
		return "Client Error"
	case s.IsServerError():
		return "Server Error"
	default:
		return ""
	}
}

func (s ResponseStatus) String() string { return fmt.Sprintf("%03d %s", uint(s), s.Reason()) }

type ResponseReason string
