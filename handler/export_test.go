package handler

// ParseBookingId exposes parseBookingId to the external handler_test package.
var ParseBookingId = parseBookingId
