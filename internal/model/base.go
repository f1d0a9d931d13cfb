package model

// UnknownPatientName labels references to patients that are not in the store.
const UnknownPatientName = "Unknown Patient"
