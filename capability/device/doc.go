// Package device exposes host device information to pages: model, OS,
// locale, screen metrics and accessibility flags via getInfo, plus an
// optional setBrightness when the provider implements
// BrightnessController. Providers without brightness support make
// setBrightness a silent no-op rather than an error.
package device
