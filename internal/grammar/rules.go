package grammar

import "github.com/ghettovoice/abnf"

func lit(key string, s string) abnf.Operator { return abnf.Literal(key, []byte(s)) }

func rng(key string, lo, hi byte) abnf.Operator { return abnf.Range(key, []byte{lo}, []byte{hi}) }

// Core rules, RFC 5234 Appendix B.1.
var (
	ruleALPHA = abnf.AltFirst("ALPHA", rng("%x41-5A", 0x41, 0x5A), rng("%x61-7A", 0x61, 0x7A))
	ruleDIGIT = rng("DIGIT", '0', '9')
	ruleSP    = lit("SP", " ")
	ruleHTAB  = lit("HTAB", "\t")
	ruleVCHAR = rng("VCHAR", 0x21, 0x7E)
)

// HTTP rules, RFC 9110 Section 5 and RFC 9112 Section 4.
var (
	ruleObsText = rng("obs-text", 0x80, 0xFF)

	ruleTchar = abnf.AltFirst(
		"tchar",
		lit("!", "!"), lit("#", "#"), lit("$", "$"), lit("%", "%"), lit("&", "&"),
		lit("'", "'"), lit("*", "*"), lit("+", "+"), lit("-", "-"), lit(".", "."),
		lit("^", "^"), lit("_", "_"), lit("`", "`"), lit("|", "|"), lit("~", "~"),
		ruleDIGIT,
		ruleALPHA,
	)

	ruleToken = abnf.Repeat1Inf("token", ruleTchar)

	ruleFieldName = abnf.Concat("field-name", ruleToken)

	// Any octet except NUL, CR and LF. This is wider than RFC 9110 field-value
	// (obs-text and other controls pass) and matches what the header store accepts.
	// Leading and trailing OWS is part of the value here and trimmed by the callers.
	ruleFieldValue = abnf.Repeat0Inf("field-value", abnf.AltFirst(
		"field-octet",
		rng("%x01-09", 0x01, 0x09),
		rng("%x0B-0C", 0x0B, 0x0C),
		rng("%x0E-FF", 0x0E, 0xFF),
	))

	ruleHeaderField = abnf.Concat("header-field", ruleFieldName, lit(":", ":"), ruleFieldValue)

	// RFC 3986 Section 3.1.
	ruleScheme = abnf.Concat(
		"scheme",
		ruleALPHA,
		abnf.Repeat0Inf("*scheme-char", abnf.AltFirst("scheme-char", ruleALPHA, ruleDIGIT, lit("+", "+"), lit("-", "-"), lit(".", "."))),
	)

	// RFC 3986 Section 3.2.2. The IP-literal content is checked by net.ParseIP after parsing.
	ruleHEXDIG = abnf.AltFirst("HEXDIG", ruleDIGIT, rng("%x41-46", 'A', 'F'), rng("%x61-66", 'a', 'f'))

	ruleUnreserved = abnf.AltFirst("unreserved", ruleALPHA, ruleDIGIT, lit("-", "-"), lit(".", "."), lit("_", "_"), lit("~", "~"))

	rulePctEncoded = abnf.Concat("pct-encoded", lit("%", "%"), ruleHEXDIG, ruleHEXDIG)

	ruleSubDelims = abnf.AltFirst(
		"sub-delims",
		lit("!", "!"), lit("$", "$"), lit("&", "&"), lit("'", "'"), lit("(", "("), lit(")", ")"),
		lit("*", "*"), lit("+", "+"), lit(",", ","), lit(";", ";"), lit("=", "="),
	)

	ruleRegName = abnf.Repeat1Inf("reg-name", abnf.AltFirst("reg-name-char", ruleUnreserved, rulePctEncoded, ruleSubDelims))

	ruleIPLiteral = abnf.Concat(
		"IP-literal",
		lit("[", "["),
		abnf.Repeat1Inf("IP-literal-content", abnf.AltFirst("IP-literal-char", ruleHEXDIG, lit(":", ":"), lit(".", "."))),
		lit("]", "]"),
	)

	ruleHost = abnf.AltFirst("host", ruleIPLiteral, ruleRegName)

	rulePort = abnf.Repeat1Inf("port", ruleDIGIT)

	ruleHostport = abnf.Concat("hostport", ruleHost, abnf.Optional("[:port]", abnf.Concat(":port", lit(":", ":"), rulePort)))

	ruleHTTPVersion = abnf.Concat("HTTP-version", lit("HTTP-name", "HTTP/"), ruleDIGIT, lit(".", "."), ruleDIGIT)

	ruleStatusCode = abnf.Concat("status-code", ruleDIGIT, ruleDIGIT, ruleDIGIT)

	ruleReasonPhrase = abnf.Repeat0Inf("reason-phrase", abnf.AltFirst("reason-char", ruleHTAB, ruleSP, ruleVCHAR, ruleObsText))

	// RFC 9112 Section 4 recommends accepting a status line without the SP before an empty reason.
	ruleStatusLine = abnf.Concat(
		"status-line",
		ruleHTTPVersion,
		ruleSP,
		ruleStatusCode,
		abnf.Optional("reason", abnf.Concat("SP reason-phrase", ruleSP, ruleReasonPhrase)),
	)
)
