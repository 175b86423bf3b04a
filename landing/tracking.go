package landing

import (
	"fmt"
	"html/template"
)

// Pixel provider names recognized in a page's trackingPixels map.
const (
	PixelMeta     = "meta"
	PixelGoogle   = "google"
	PixelLinkedIn = "linkedin"
	PixelTikTok   = "tiktok"
)

// pixelOrder fixes the emission order so output is deterministic. Each
// provider is gated only on its own identifier.
var pixelOrder = []string{PixelMeta, PixelGoogle, PixelLinkedIn, PixelTikTok}

var pixelSnippets = map[string]string{
	PixelMeta: `<script>!function(f,b,e,v,n,t,s){if(f.fbq)return;n=f.fbq=function(){n.callMethod?n.callMethod.apply(n,arguments):n.queue.push(arguments)};if(!f._fbq)f._fbq=n;n.push=n;n.loaded=!0;n.version='2.0';n.queue=[];t=b.createElement(e);t.async=!0;t.src=v;s=b.getElementsByTagName(e)[0];s.parentNode.insertBefore(t,s)}(window,document,'script','https://connect.facebook.net/en_US/fbevents.js');fbq('init','%s');fbq('track','PageView');</script>`,
	PixelGoogle: `<script async src="https://www.googletagmanager.com/gtag/js?id=%s"></script><script>window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}gtag('js',new Date());gtag('config','%s');</script>`,
	PixelLinkedIn: `<script>_linkedin_partner_id="%s";window._linkedin_data_partner_ids=window._linkedin_data_partner_ids||[];window._linkedin_data_partner_ids.push(_linkedin_partner_id);</script><script async src="https://snap.licdn.com/li.lms-analytics/insight.min.js"></script>`,
	PixelTikTok: `<script>!function(w,d,t){w.TiktokAnalyticsObject=t;var ttq=w[t]=w[t]||[];ttq.load='%s';ttq.page=function(){};}(window,document,'ttq');</script>`,
}

// TrackingSnippets builds the third-party analytics bootstrap for a page's
// optional pixel configuration. It reads nothing from section content and is
// purely additive: an absent provider never suppresses another's snippet.
func TrackingSnippets(pixels map[string]string) []template.HTML {
	if len(pixels) == 0 {
		return nil
	}

	out := []template.HTML{}
	for _, provider := range pixelOrder {
		id := pixels[provider]
		if id == "" {
			continue
		}

		escaped := template.JSEscapeString(id)
		snippet := pixelSnippets[provider]
		if provider == PixelGoogle {
			out = append(out, template.HTML(fmt.Sprintf(snippet, escaped, escaped)))
		} else {
			out = append(out, template.HTML(fmt.Sprintf(snippet, escaped)))
		}
	}

	return out
}
