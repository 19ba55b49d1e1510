package action

// User-facing prompt texts, in English. Translation into the user's
// language happens at the orchestrator boundary, not here.
const MSG_SOMETHING_WENT_WRONG = "Something went wrong, please try again."
const MSG_ASK_IDENTIFIER = "Please share your Beneficiary ID/Aadhaar Number/Phone number to check your account details."
const MSG_ASK_OTP = "An OTP has been sent to your registered mobile number. Please enter it to continue."
const MSG_ASK_LAST_DIGITS = "This mobile number is tagged with multiple records. Please share the last four digits of your Aadhaar number."
const MSG_INVALID_OTP = "The OTP entered is incorrect. Please enter it again, or say 'resend OTP'."
const MSG_INVALID_QUESTION = "Please ask a valid question related to your PM-Kisan account."
const MSG_NO_RECORDS = "No records were found for the details provided. Please verify the number and try again by asking your question."
const MSG_TRY_AGAIN = "We could not process that right now. Please share your Beneficiary ID/Aadhaar Number/Phone number again."
const MSG_ASK_PHONE = "Please share your registered phone number to fetch your soil health card."
const MSG_INVALID_PHONE = "The phone number entered appears invalid. Please share your registered phone number again."
const MSG_SHC_READY = "Your soil health card is ready. You can download it here: "
