package gcauth

const (
	// googleApplicationCredentials is the environment variable for the
	// path to a credentials file.
	googleApplicationCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	// gceMetadataHost is the environment variable for overriding the
	// host of the metadata server.
	gceMetadataHost = "GCE_METADATA_HOST"
	// cloudSDKConfig is the environment variable for the configuration
	// directory of gcloud.
	cloudSDKConfig = "CLOUDSDK_CONFIG"
)
