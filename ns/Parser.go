package ns

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// nsQuery builds element search paths for one document. The production
// endpoint serves the response inside a namespace while the sandbox has been
// seen without one, so the root is probed once and every later lookup uses
// the same qualification.
type nsQuery struct {
	prefix string
}

func newNsQuery(root *etree.Element) nsQuery {
	return nsQuery{prefix: root.Space}
}

func (q nsQuery) path(tag string) string {
	if q.prefix != "" {
		return "//" + q.prefix + ":" + tag
	}
	return "//" + tag
}

// The API serves responses with a UTF-8 byte order mark which the XML
// decoder rejects as leading character data.
func trimBOM(xmlText string) string {
	return strings.TrimPrefix(xmlText, "\ufeff")
}

func boolAttr(el *etree.Element, key string) bool {
	return strings.ToLower(el.SelectAttrValue(key, "false")) == "true"
}

func firstAttr(el *etree.Element, keys ...string) string {
	for _, key := range keys {
		if v := el.SelectAttrValue(key, ""); v != "" {
			return v
		}
	}
	return ""
}

// walkElements visits el and its whole descendant subtree in document order.
func walkElements(el *etree.Element, visit func(*etree.Element)) {
	visit(el)
	for _, child := range el.ChildElements() {
		walkElements(child, visit)
	}
}

// ParseDomainsCheck extracts a BatchResponse from a namecheap.domains.check
// response body. It never fails outright: malformed XML, an Errors block, or
// a response with neither results nor errors all come back as an
// ERROR-status BatchResponse.
func ParseDomainsCheck(xmlText string) BatchResponse {
	out := BatchResponse{Status: StatusOK}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(trimBOM(xmlText)); err != nil {
		return ErrorResponse(fmt.Sprintf("XML parse error: %s", err.Error()))
	}
	root := doc.Root()
	if root == nil {
		return ErrorResponse("XML parse error: empty document")
	}
	q := newNsQuery(root)

	if errorsNode := doc.FindElement(q.path("Errors")); errorsNode != nil {
		for _, errNode := range errorsNode.ChildElements() {
			num := strings.TrimSpace(errNode.SelectAttrValue("Number", ""))
			txt := strings.TrimSpace(errNode.Text())
			msg := strings.TrimSpace(num + " " + txt)
			if msg == "" {
				msg = "Unknown API error"
			}
			out.Errors = append(out.Errors, msg)
		}
	}

	for _, node := range doc.FindElements(q.path("DomainCheckResult")) {
		result := DomainCheckResult{
			Domain:        strings.ToLower(strings.TrimSpace(node.SelectAttrValue("Domain", ""))),
			Available:     boolAttr(node, "Available"),
			IsPremiumName: boolAttr(node, "IsPremiumName"),
			IcannFee:      node.SelectAttrValue("IcannFee", ""),
			EapFee:        node.SelectAttrValue("EapFee", ""),
			Error:         node.SelectAttrValue("Description", ""),
		}
		// Premium prices are meaningful only on premium names; non-premium
		// rows get theirs from the TLD price table later.
		if result.IsPremiumName {
			result.PremiumRegistrationPrice = node.SelectAttrValue("PremiumRegistrationPrice", "")
			result.PremiumRenewalPrice = node.SelectAttrValue("PremiumRenewalPrice", "")
			result.PremiumRestorePrice = node.SelectAttrValue("PremiumRestorePrice", "")
			result.PremiumTransferPrice = node.SelectAttrValue("PremiumTransferPrice", "")
		}
		out.Results = append(out.Results, result)
	}

	if len(out.Results) == 0 && len(out.Errors) == 0 {
		return ErrorResponse("No DomainCheckResult found (check namespace/parameters)")
	}
	if len(out.Errors) > 0 {
		out.Status = StatusError
	}
	return out
}

// ParseUsersGetPricing extracts a TLD price table from a
// namecheap.users.getPricing response body. The pricing XML nests
// differently per product type, so instead of fixing a schema the whole
// document is scanned for elements carrying a Name attribute and their
// subtrees for REGISTER/RENEW/TRANSFER action nodes. The first price and
// currency seen per field win. Malformed XML yields an empty map.
func ParseUsersGetPricing(xmlText string) map[string]TldPricing {
	out := make(map[string]TldPricing)
	doc := etree.NewDocument()
	if err := doc.ReadFromString(trimBOM(xmlText)); err != nil {
		return out
	}
	root := doc.Root()
	if root == nil {
		return out
	}
	walkElements(root, func(product *etree.Element) {
		name := strings.TrimSpace(product.SelectAttrValue("Name", ""))
		if name == "" {
			return
		}
		var pricing TldPricing
		walkElements(product, func(node *etree.Element) {
			action := strings.ToUpper(strings.TrimSpace(node.SelectAttrValue("Action", "")))
			var field *string
			switch action {
			case "REGISTER":
				field = &pricing.RegisterPrice
			case "RENEW":
				field = &pricing.RenewPrice
			case "TRANSFER":
				field = &pricing.TransferPrice
			default:
				return
			}
			if price := firstAttr(node, "Price", "RetailPrice", "RegularPrice"); price != "" && *field == "" {
				*field = price
			}
			if currency := node.SelectAttrValue("Currency", ""); currency != "" && pricing.Currency == "" {
				pricing.Currency = currency
			}
		})
		if pricing.HasAnyPrice() {
			out[strings.ToUpper(name)] = pricing
		}
	})
	return out
}
