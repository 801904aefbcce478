package params

// Version is the gallery release version.
const Version = "0.3.1"
