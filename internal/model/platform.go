package model

import "strings"

// SocialPlatform represents a social media platform whose profile links
// count as contact information.
type SocialPlatform string

// Social media platform constants.
const (
	// SocialPlatformUnknown represents an unknown platform.
	SocialPlatformUnknown SocialPlatform = ""
	// SocialPlatformFacebook represents Facebook.
	SocialPlatformFacebook SocialPlatform = "facebook"
	// SocialPlatformTwitter represents Twitter/X.
	SocialPlatformTwitter SocialPlatform = "twitter"
	// SocialPlatformLinkedIn represents LinkedIn.
	SocialPlatformLinkedIn SocialPlatform = "linkedin"
	// SocialPlatformInstagram represents Instagram.
	SocialPlatformInstagram SocialPlatform = "instagram"
)

// socialDomains lists the domain matched for each platform, in detection order.
var socialDomains = []struct {
	platform SocialPlatform
	domain   string
}{
	{SocialPlatformFacebook, "facebook.com"},
	{SocialPlatformTwitter, "twitter.com"},
	{SocialPlatformLinkedIn, "linkedin.com"},
	{SocialPlatformInstagram, "instagram.com"},
}

// String returns the string representation of the SocialPlatform.
func (p SocialPlatform) String() string {
	if p == SocialPlatformUnknown {
		return "unknown"
	}
	return string(p)
}

// IsValid returns true if this is a known platform.
func (p SocialPlatform) IsValid() bool {
	switch p {
	case SocialPlatformFacebook, SocialPlatformTwitter,
		SocialPlatformLinkedIn, SocialPlatformInstagram:
		return true
	default:
		return false
	}
}

// Domain returns the domain that identifies links to the platform.
func (p SocialPlatform) Domain() string {
	for _, d := range socialDomains {
		if d.platform == p {
			return d.domain
		}
	}
	return ""
}

// PlatformFromLink returns the platform whose domain appears anywhere in
// link, compared case-insensitively. Matching is by substring, so
// "m.facebook.com/shop" and "https://www.linkedin.com/company/x" both count.
func PlatformFromLink(link string) SocialPlatform {
	lower := strings.ToLower(link)
	for _, d := range socialDomains {
		if strings.Contains(lower, d.domain) {
			return d.platform
		}
	}
	return SocialPlatformUnknown
}
