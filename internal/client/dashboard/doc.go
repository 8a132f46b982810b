// Package dashboard renders the security dashboard shown to a signed-in
// user. The content is static: device, alert and threat data are fixtures,
// and the only mutable state is the active tab, the monitoring toggle and
// the alert banner.
package dashboard
